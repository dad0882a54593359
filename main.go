package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	configx "github.com/ninthbase/shopmate/pkg/config"
	logx "github.com/ninthbase/shopmate/pkg/logger"
	"github.com/ninthbase/shopmate/server"
)

var rootCmd = &cobra.Command{
	Use:   "shopmate",
	Short: "Multi-agent retail assistant with catalog retrieval",
	Long: `Shopmate routes customer utterances to specialist agents (product
search, order status, general support) and answers product questions
with vector-similarity retrieval over the catalog.

Example usage:
  shopmate serve          # run the HTTP API
  shopmate chat           # interactive console session`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant on the console",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(chatCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(ctx context.Context) (*app, *AppConfig, error) {
	cfg := configx.MustNew[AppConfig]("")
	logx.Init(logx.Config{Level: cfg.LogLevel, PrettyFormat: cfg.LogPretty})

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return a, cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, _, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	srv, err := server.New(a.orch, *configx.MustNew[server.Config]("SERVER"))
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, _, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	convID, err := a.orch.StartConversation(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Shopmate assistant. Type your question, or /quit to leave.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return a.orch.EndConversation(ctx, convID)
		}

		resp, err := a.orch.SubmitUtterance(ctx, convID, line)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Printf("[%s] %s\n", resp.Agent, resp.Content)
	}
	return a.orch.EndConversation(ctx, convID)
}

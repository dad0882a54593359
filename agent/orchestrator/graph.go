package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	nodex "github.com/ninthbase/shopmate/agent/nodes"
)

func (s *Service) compileTurnGraph(
	ctx context.Context,
) (compose.Runnable[nodex.TurnInput, *nodex.TurnOutput], error) {
	graph := compose.NewGraph[nodex.TurnInput, *nodex.TurnOutput]()

	if err := graph.AddLambdaNode("validate_input",
		compose.InvokableLambda(func(ctx context.Context, in nodex.TurnInput) (*nodex.TurnState, error) {
			return nodex.ValidateInput(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_input: %w", err)
	}

	if err := graph.AddLambdaNode("append_user_turn",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
			return nodex.AppendUserTurn(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node append_user_turn: %w", err)
	}

	if err := graph.AddLambdaNode("classify",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
			return nodex.Classify(ctx, in, s.agents, s.classifyConfig())
		}),
	); err != nil {
		return nil, fmt.Errorf("add node classify: %w", err)
	}

	if err := graph.AddLambdaNode("dispatch",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
			return nodex.Dispatch(ctx, in, s.agents, s.cfg.HandoffLimit)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node dispatch: %w", err)
	}

	if err := graph.AddLambdaNode("integrate",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
			return nodex.Integrate(ctx, in, s.rephraser)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node integrate: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnOutput, error) {
			return nodex.FinalizeReply(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_input"},
		{"validate_input", "append_user_turn"},
		{"append_user_turn", "classify"},
		{"classify", "dispatch"},
		{"dispatch", "integrate"},
		{"integrate", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.turn"))
	if err != nil {
		return nil, fmt.Errorf("compile turn graph: %w", err)
	}
	return runner, nil
}

package prompt

import (
	_ "embed"
	"strings"
)

//go:embed template/rephraser.txt
var rephraserRaw string

// Set holds loaded prompt content.
type Set struct {
	Rephraser string
}

// Load returns the prompt set with trimmed content. Safe to call
// concurrently; the embed is compile-time.
func Load() Set {
	return Set{
		Rephraser: strings.TrimSpace(rephraserRaw),
	}
}

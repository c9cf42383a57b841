package cli

import (
	"testing"

	"github.com/sprite-ai/daf/internal/config"
)

func TestRootHasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"view", "serve", "check", "version"} {
		if !names[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}
}

func TestVersionDefaults(t *testing.T) {
	if version != "dev" {
		t.Errorf("version = %q, want dev", version)
	}
}

func TestResolveSource(t *testing.T) {
	cfg := &config.Config{Source: "from-config.jsonl"}

	if got := resolveSource([]string{"arg.jsonl"}, cfg); got != "arg.jsonl" {
		t.Errorf("resolveSource with arg = %q", got)
	}
	if got := resolveSource(nil, cfg); got != "from-config.jsonl" {
		t.Errorf("resolveSource without arg = %q", got)
	}
}

package cmd

import (
	"bytes"
	"testing"
)

func TestRootCommands(t *testing.T) {
	root := NewRootCmd()

	expected := []string{"join", "posters", "run", "import", "inspect"}
	for _, name := range expected {
		found, _, err := root.Find([]string{name})
		if err != nil || found.Name() != name {
			t.Errorf("Expected subcommand %q, got %v (%v)", name, found, err)
		}
	}

	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("Expected persistent --config flag")
	}
	if root.PersistentFlags().Lookup("verbose") == nil {
		t.Error("Expected persistent --verbose flag")
	}
}

func TestRootConfigFlagReachesSubcommand(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"join", "--config", "/nonexistent/moviedata.toml", "--catalog", "a.csv", "--plots", "b.csv", "--output", "c.csv"})

	if err := root.Execute(); err == nil {
		t.Error("Expected error for missing config file, got nil")
	}
}

package main

import (
	"bytes"
	"testing"
)

func TestCommandTree(t *testing.T) {
	root := newRootCmd()

	for _, path := range [][]string{{"migrate", "up"}, {"migrate", "down"}, {"migrate", "version"}, {"seed"}} {
		cmd, _, err := root.Find(path)
		if err != nil {
			t.Fatalf("find %v: %v", path, err)
		}
		if cmd.Name() != path[len(path)-1] {
			t.Fatalf("find %v resolved to %q", path, cmd.Name())
		}
	}

	down, _, _ := root.Find([]string{"migrate", "down"})
	if f := down.Flags().Lookup("steps"); f == nil || f.DefValue != "1" {
		t.Fatalf("expected --steps with default 1")
	}
}

func TestHelpRuns(t *testing.T) {
	root := newRootCmd()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})

	if err := root.Execute(); err != nil {
		t.Fatalf("help: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("migrate")) {
		t.Fatalf("help should list migrate: %s", out.String())
	}
}

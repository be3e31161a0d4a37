package main

import (
	"testing"
)

func TestCommandMap(t *testing.T) {
	m := commandMap()
	for _, name := range []string{"clean", "leftalign"} {
		if m[name] == nil {
			t.Errorf("%s missing from command map", name)
		}
	}
	if len(m) != len(SubCommands) {
		t.Errorf("expected %d commands, found %d", len(SubCommands), len(m))
	}
}

package mcp

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestWrapResponse_OmitsEmptySections(t *testing.T) {
	env := WrapResponse(map[string]int{"orders": 5}, nil, nil, nil)
	env.Chart = "```mermaid\n```"

	out := formatResult(env)
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("formatResult() produced invalid JSON: %v", err)
	}
	for _, key := range []string{"context", "warnings", "guidance", "Chart"} {
		if _, ok := decoded[key]; ok {
			t.Errorf("expected %q to be omitted, got %s", key, out)
		}
	}
	if strings.Contains(out, "mermaid") {
		t.Error("chart must not be serialized into the envelope")
	}
}

func TestFormatResult_PassesStringsThrough(t *testing.T) {
	if got := formatResult("ledger"); got != "ledger" {
		t.Errorf("expected plain string, got %q", got)
	}
}

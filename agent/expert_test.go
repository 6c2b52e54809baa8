package agent

import (
	"context"
	"testing"
)

func TestExpertCallRejectsNonStringQuestion(t *testing.T) {
	e := &Expert{Name: "analyst", Description: "test expert"}

	fresp := e.Call(context.Background(), "call-1", map[string]any{"question": 42})

	if fresp.ID != "call-1" || fresp.Name != "analyst" {
		t.Errorf("response identity = (%q, %q), want (call-1, analyst)", fresp.ID, fresp.Name)
	}
	// The error must reach the model as a plain string, anything else
	// marshals to an empty JSON object.
	msg, ok := fresp.Response["error"].(string)
	if !ok {
		t.Fatalf("Response[error] is %T, want string", fresp.Response["error"])
	}
	if msg == "" {
		t.Error("Response[error] is empty")
	}
}

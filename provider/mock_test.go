package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/agentswarm/core"
)

func TestMockModelScript(t *testing.T) {
	m := NewMockModel("mock", "mock").
		EnqueueText("first").
		EnqueueToolCall("get_weather", `{"city":"Berlin"}`)

	reply, err := m.Generate(context.Background(), &core.Request{
		Messages: []core.Message{core.NewUserMessage("hi")},
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if reply.Content != "first" {
		t.Errorf("expected scripted text, got %q", reply.Content)
	}

	reply, err = m.Generate(context.Background(), &core.Request{})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if len(reply.ToolCalls) != 1 || reply.ToolCalls[0].Function.Name != "get_weather" {
		t.Fatalf("expected scripted tool call, got %+v", reply.ToolCalls)
	}

	if reply.ToolCalls[0].ID == "" {
		t.Error("expected generated call ID")
	}

	if got := len(m.Requests()); got != 2 {
		t.Errorf("expected 2 recorded requests, got %d", got)
	}
}

func TestMockModelEchoFallback(t *testing.T) {
	m := NewMockModel("", "")

	reply, err := m.Generate(context.Background(), &core.Request{
		Messages: []core.Message{core.NewUserMessage("hello")},
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if reply.Content != "Mock response to: hello" {
		t.Errorf("unexpected fallback reply: %q", reply.Content)
	}

	if m.Info().Name != "mock" || m.Info().Provider != "mock" {
		t.Errorf("unexpected default info: %+v", m.Info())
	}
}

func TestMockModelEnqueueError(t *testing.T) {
	m := NewMockModel("mock", "mock").EnqueueError(errors.New("boom"))

	_, err := m.Generate(context.Background(), &core.Request{})

	var provErr *core.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}

	if provErr.Provider != "mock" {
		t.Errorf("expected provider mock, got %q", provErr.Provider)
	}
}

func TestMockModelScriptIsolation(t *testing.T) {
	queued := core.Message{Role: core.RoleAssistant, Content: "stable"}
	m := NewMockModel("mock", "mock").Enqueue(queued)

	reply, err := m.Generate(context.Background(), &core.Request{})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	reply.Content = "mutated"

	if queued.Content != "stable" {
		t.Errorf("reply aliases the enqueued message: %q", queued.Content)
	}
}

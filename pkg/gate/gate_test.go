package gate

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/codeplane-hq/codeplane-mcp/pkg/transport"
)

type stubCaller struct {
	res   transport.Result
	err   error
	calls int
	last  transport.Request
}

func (s *stubCaller) Do(_ context.Context, req transport.Request) (transport.Result, error) {
	s.calls++
	s.last = req
	return s.res, s.err
}

func TestCallWithoutCredentialNeverTouchesEngine(t *testing.T) {
	stub := &stubCaller{}
	g := New(stub, false, nil)

	oc := g.Call(context.Background(), transport.Request{Method: http.MethodGet, Path: "/api/usage"})
	if !oc.IsError {
		t.Fatalf("expected error outcome")
	}
	if !strings.HasPrefix(oc.Text, "Error: no API key configured") {
		t.Fatalf("unexpected text: %q", oc.Text)
	}
	if stub.calls != 0 {
		t.Fatalf("engine was called %d times", stub.calls)
	}
}

func TestCallPrefersNamedField(t *testing.T) {
	stub := &stubCaller{res: transport.Result{
		JSON:  true,
		Value: map[string]any{"answer": "hi", "session_id": "s-1"},
	}}
	g := New(stub, true, nil)

	oc := g.Call(context.Background(), transport.Request{Method: http.MethodPost, Path: "/ask"}, "answer")
	if oc.IsError {
		t.Fatalf("unexpected error outcome: %q", oc.Text)
	}
	if oc.Text != "hi" {
		t.Fatalf("unexpected text: %q", oc.Text)
	}
}

func TestCallSkipsEmptyPreferredField(t *testing.T) {
	stub := &stubCaller{res: transport.Result{
		JSON:  true,
		Value: map[string]any{"answer": "  ", "result": "done"},
	}}
	g := New(stub, true, nil)

	oc := g.Call(context.Background(), transport.Request{Method: http.MethodPost, Path: "/ask"}, "answer", "result")
	if oc.Text != "done" {
		t.Fatalf("unexpected text: %q", oc.Text)
	}
}

func TestCallFallsBackToPrettyJSON(t *testing.T) {
	stub := &stubCaller{res: transport.Result{
		JSON:  true,
		Value: map[string]any{"sessions": []any{"a", "b"}},
	}}
	g := New(stub, true, nil)

	oc := g.Call(context.Background(), transport.Request{Method: http.MethodGet, Path: "/api/sessions"})
	if oc.IsError {
		t.Fatalf("unexpected error outcome: %q", oc.Text)
	}
	var round map[string]any
	if err := json.Unmarshal([]byte(oc.Text), &round); err != nil {
		t.Fatalf("fallback text is not JSON: %v\n%s", err, oc.Text)
	}
	if !strings.Contains(oc.Text, "\n") {
		t.Fatalf("fallback text is not indented: %q", oc.Text)
	}
}

func TestCallPassesRawTextThrough(t *testing.T) {
	stub := &stubCaller{res: transport.Result{Raw: "plain text"}}
	g := New(stub, true, nil)

	oc := g.Call(context.Background(), transport.Request{Method: http.MethodGet, Path: "/api/usage"})
	if oc.IsError || oc.Text != "plain text" {
		t.Fatalf("unexpected outcome: %+v", oc)
	}
}

func TestCallFormatsFaultWithFixedPrefix(t *testing.T) {
	stub := &stubCaller{err: &transport.Fault{Kind: transport.KindHTTP, Message: "Unauthorized"}}
	g := New(stub, true, nil)

	oc := g.Call(context.Background(), transport.Request{Method: http.MethodPost, Path: "/review"})
	if !oc.IsError {
		t.Fatalf("expected error outcome")
	}
	if oc.Text != "Error: Unauthorized" {
		t.Fatalf("unexpected text: %q", oc.Text)
	}
}

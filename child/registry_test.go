package child_test

import (
	"testing"

	"github.com/momentics/forkrpc/api"
	"github.com/momentics/forkrpc/child"
	"github.com/momentics/forkrpc/fake"
)

func TestRegistryLookup(t *testing.T) {
	child.Register("upper", func(em api.Emitter, args []any) ([]any, error) {
		return args, nil
	})
	child.RegisterAsync("ticker", func(done api.Done, em api.AsyncEmitter, args []any) {
		done()
	})

	if _, err := child.LookupHandler("upper"); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if _, err := child.LookupAsync("ticker"); err != nil {
		t.Fatalf("lookup async: %v", err)
	}
	if _, err := child.LookupHandler("missing"); err == nil {
		t.Fatal("expected error for unregistered handler")
	}
	if _, err := child.LookupAsync("upper"); err == nil {
		t.Fatal("blocking handler must not resolve as async")
	}
}

func TestHandlerEmitsThroughFake(t *testing.T) {
	handler := func(em api.Emitter, args []any) ([]any, error) {
		if err := em.Emit("progress", "half"); err != nil {
			return nil, err
		}
		return []any{"done"}, nil
	}

	em := &fake.Emitter{}
	values, err := handler(em, nil)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if values[0].(string) != "done" {
		t.Fatalf("values %v", values)
	}
	events := em.Events()
	if len(events) != 1 || events[0][0].(string) != "progress" {
		t.Fatalf("events %v", events)
	}
}

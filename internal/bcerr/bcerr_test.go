package bcerr

import "testing"

func TestSlotFirstFailureWins(t *testing.T) {
	var s Slot
	s.Set(Type, "first failure")
	s.Set(Range, "second failure")

	if !s.IsSet() {
		t.Fatal("expected slot to be set")
	}
	if got := s.Peek().Kind; got != Type {
		t.Fatalf("expected first Set to win, got kind %v", got)
	}

	e := s.Take()
	if e.Kind != Type || e.Message != "first failure" {
		t.Fatalf("unexpected error after Take: %+v", e)
	}
	if s.IsSet() {
		t.Fatal("expected Take to clear the slot")
	}
}

func TestSlotClear(t *testing.T) {
	var s Slot
	s.Set(Syntax, "bad token")
	s.Clear()
	if s.IsSet() {
		t.Fatal("expected Clear to discard the pending error")
	}
}

func TestErrorString(t *testing.T) {
	e := &Error{Kind: Reference, Message: "a is not bound"}
	if got, want := e.Error(), "ReferenceError: a is not bound"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMessageTruncation(t *testing.T) {
	var s Slot
	long := "this message is certainly going to be longer than sixty four characters total"
	s.Set(Type, "%s", long)
	msg := s.Peek().Message
	if len(msg) >= len(long) {
		t.Fatalf("expected message shorter than input, got %q", msg)
	}
	if msg[len(msg)-len("…"):] != "…" {
		t.Fatalf("expected truncated message to end with an ellipsis, got %q", msg)
	}
}

package transfer

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusRejected, true},
		{StatusConfirmed, StatusRejected, true},
		{StatusConfirmed, StatusPending, false},
		{StatusRejected, StatusPending, false},
		{StatusRejected, StatusConfirmed, false},
		{StatusPending, StatusPending, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s)=%v want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTransition(t *testing.T) {
	it := &Item{Status: StatusPending}
	if err := it.Transition(StatusConfirmed); err != nil {
		t.Fatalf("Transition err: %v", err)
	}
	if it.Status != StatusConfirmed {
		t.Fatalf("status=%s", it.Status)
	}

	rejected := &Item{Status: StatusRejected}
	if err := rejected.Transition(StatusConfirmed); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
	if rejected.Status != StatusRejected {
		t.Fatalf("illegal move changed status to %s", rejected.Status)
	}
}

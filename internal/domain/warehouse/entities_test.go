package warehouse

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusAwaitingWithdrawal, StatusWithdrawn, true},
		{StatusWithdrawn, StatusAwaitingWithdrawal, false},
		{StatusWithdrawn, StatusWithdrawn, false},
		{StatusAwaitingWithdrawal, StatusAwaitingWithdrawal, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s)=%v want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTransition(t *testing.T) {
	hq := &HqDeposit{Status: StatusAwaitingWithdrawal}
	if err := hq.Transition(StatusWithdrawn); err != nil {
		t.Fatalf("Transition err: %v", err)
	}
	if hq.Status != StatusWithdrawn {
		t.Fatalf("status=%s", hq.Status)
	}

	if err := hq.Transition(StatusAwaitingWithdrawal); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
	if hq.Status != StatusWithdrawn {
		t.Fatalf("illegal move changed status to %s", hq.Status)
	}
}

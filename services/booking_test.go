package services

import (
	"testing"

	"localbookr-server/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from models.BookingStatus
		to   models.BookingStatus
		want bool
	}{
		{"pending to waiting", models.BookingStatusPending, models.BookingStatusWaiting, true},
		{"pending to confirmed", models.BookingStatusPending, models.BookingStatusConfirmed, true},
		{"pending to assigned", models.BookingStatusPending, models.BookingStatusAssigned, true},
		{"pending to cancelled", models.BookingStatusPending, models.BookingStatusCancelled, true},
		{"pending to in progress", models.BookingStatusPending, models.BookingStatusInProgress, false},
		{"pending to completed", models.BookingStatusPending, models.BookingStatusCompleted, false},
		{"waiting to confirmed", models.BookingStatusWaiting, models.BookingStatusConfirmed, false},
		{"waiting to assigned", models.BookingStatusWaiting, models.BookingStatusAssigned, true},
		{"waiting to pending", models.BookingStatusWaiting, models.BookingStatusPending, false},
		{"confirmed to assigned", models.BookingStatusConfirmed, models.BookingStatusAssigned, true},
		{"confirmed to completed", models.BookingStatusConfirmed, models.BookingStatusCompleted, false},
		{"assigned to in progress", models.BookingStatusAssigned, models.BookingStatusInProgress, true},
		{"assigned to completed", models.BookingStatusAssigned, models.BookingStatusCompleted, true},
		{"assigned to cancelled", models.BookingStatusAssigned, models.BookingStatusCancelled, true},
		{"in progress to completed", models.BookingStatusInProgress, models.BookingStatusCompleted, true},
		{"in progress to assigned", models.BookingStatusInProgress, models.BookingStatusAssigned, false},
		{"completed is terminal", models.BookingStatusCompleted, models.BookingStatusCancelled, false},
		{"cancelled is terminal", models.BookingStatusCancelled, models.BookingStatusPending, false},
		{"no self transition", models.BookingStatusPending, models.BookingStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestTerminalStatesAdmitNoTransitions(t *testing.T) {
	all := []models.BookingStatus{
		models.BookingStatusPending,
		models.BookingStatusWaiting,
		models.BookingStatusConfirmed,
		models.BookingStatusAssigned,
		models.BookingStatusInProgress,
		models.BookingStatusCompleted,
		models.BookingStatusCancelled,
	}

	for _, terminal := range []models.BookingStatus{models.BookingStatusCompleted, models.BookingStatusCancelled} {
		if !terminal.IsTerminal() {
			t.Errorf("%s should report terminal", terminal)
		}
		for _, to := range all {
			if CanTransition(terminal, to) {
				t.Errorf("terminal state %s allows transition to %s", terminal, to)
			}
		}
	}
}

func TestAssignable(t *testing.T) {
	providerID := uint(7)

	tests := []struct {
		name       string
		status     models.BookingStatus
		providerID *uint
		want       bool
	}{
		{"pending without provider", models.BookingStatusPending, nil, true},
		{"waiting without provider", models.BookingStatusWaiting, nil, true},
		{"confirmed without provider", models.BookingStatusConfirmed, nil, true},
		{"assigned already has a provider slot", models.BookingStatusAssigned, nil, false},
		{"in progress", models.BookingStatusInProgress, nil, false},
		{"completed", models.BookingStatusCompleted, nil, false},
		{"cancelled", models.BookingStatusCancelled, nil, false},
		{"provider already attached wins over status", models.BookingStatusConfirmed, &providerID, false},
		{"pending with provider attached", models.BookingStatusPending, &providerID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Assignable(tt.status, tt.providerID); got != tt.want {
				t.Errorf("Assignable(%s, %v) = %v, want %v", tt.status, tt.providerID, got, tt.want)
			}
		})
	}
}

func TestEveryStatusReachesATerminalState(t *testing.T) {
	live := []models.BookingStatus{
		models.BookingStatusPending,
		models.BookingStatusWaiting,
		models.BookingStatusConfirmed,
		models.BookingStatusAssigned,
		models.BookingStatusInProgress,
	}

	for _, from := range live {
		if !CanTransition(from, models.BookingStatusCancelled) {
			t.Errorf("live state %s cannot be cancelled", from)
		}
	}
}

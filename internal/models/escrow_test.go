package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestIsValidEscrowTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		{EscrowStatusPending, EscrowStatusCompleted, true},
		{EscrowStatusPending, EscrowStatusDisputed, true},
		{EscrowStatusCompleted, EscrowStatusPending, false},
		{EscrowStatusCompleted, EscrowStatusDisputed, false},
		{EscrowStatusDisputed, EscrowStatusCompleted, false},
		{EscrowStatusDisputed, EscrowStatusPending, false},
		{EscrowStatusPending, EscrowStatusPending, false},
		{"bogus", EscrowStatusCompleted, false},
		{EscrowStatusPending, "bogus", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			if got := IsValidEscrowTransition(tt.from, tt.to); got != tt.expected {
				t.Errorf("IsValidEscrowTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestEscrowParty(t *testing.T) {
	employer := uuid.New()
	freelancer := uuid.New()
	stranger := uuid.New()

	e := &Escrow{EmployerID: employer, FreelancerID: freelancer}

	if got := e.Party(employer); got != "employer" {
		t.Errorf("Party(employer) = %q, want employer", got)
	}
	if got := e.Party(freelancer); got != "freelancer" {
		t.Errorf("Party(freelancer) = %q, want freelancer", got)
	}
	if got := e.Party(stranger); got != "" {
		t.Errorf("Party(stranger) = %q, want empty", got)
	}
}

package rbac

import "testing"

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		expected   bool
	}{
		{RoleEmployer, PermPostJob, true},
		{RoleEmployer, PermFundEscrow, true},
		{RoleEmployer, PermApplyJob, false},
		{RoleFreelancer, PermApplyJob, true},
		{RoleFreelancer, PermCreateTraining, true},
		{RoleFreelancer, PermPostJob, false},
		{RoleFreelancer, PermResolveDispute, false},
		{RoleAdmin, PermResolveDispute, true},
		{RoleAdmin, PermPostJob, true},
		{"unknown", PermPostJob, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"_"+tt.permission, func(t *testing.T) {
			if got := HasPermission(tt.role, tt.permission); got != tt.expected {
				t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.permission, got, tt.expected)
			}
		})
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{RoleFreelancer, RoleEmployer, RoleAdmin} {
		if !IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = false", role)
		}
	}
	if IsValidRole("owner") {
		t.Error(`IsValidRole("owner") = true, want false`)
	}
}

package rbac

// Role constants
const (
	RoleFreelancer = "freelancer"
	RoleEmployer   = "employer"
	RoleAdmin      = "admin"
)

// Permission constants
const (
	PermPostJob          = "post_job"
	PermApplyJob         = "apply_job"
	PermAssignJob        = "assign_job"
	PermFundEscrow       = "fund_escrow"
	PermCreateTraining   = "create_training"
	PermReviewFreelancer = "review_freelancer"
	PermResolveDispute   = "resolve_dispute"
)

// RolePermissions defines what each role can do.
var RolePermissions = map[string][]string{
	RoleEmployer: {
		PermPostJob, PermAssignJob, PermFundEscrow, PermReviewFreelancer,
	},
	RoleFreelancer: {
		PermApplyJob, PermCreateTraining,
	},
	RoleAdmin: {
		PermPostJob, PermApplyJob, PermAssignJob, PermFundEscrow,
		PermCreateTraining, PermReviewFreelancer, PermResolveDispute,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

func IsValidRole(role string) bool {
	return role == RoleFreelancer || role == RoleEmployer || role == RoleAdmin
}

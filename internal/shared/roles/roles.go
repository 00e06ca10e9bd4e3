package roles

const (
	RoleAdmin      = "Admin"
	RoleHR         = "HR"
	RoleManager    = "Manager"
	RoleFinance    = "Finance"
	RoleEmployee   = "Employee"
	RoleIntern     = "Intern"
	RoleConsultant = "Consultant"
)

// ManagementRoles may approve or reject leave applications.
var ManagementRoles = []string{RoleAdmin, RoleHR, RoleManager, RoleFinance}

func IsManagementRole(role string) bool {
	for _, r := range ManagementRoles {
		if r == role {
			return true
		}
	}
	return false
}

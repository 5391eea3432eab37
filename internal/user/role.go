package user

// Role is fixed at account creation and never user-editable.
type Role string

const (
	RoleClient Role = "client"
	RoleCoach  Role = "coach"
)

var AllRoles = []Role{
	RoleClient,
	RoleCoach,
}

func (r Role) IsValid() bool {
	for _, v := range AllRoles {
		if r == v {
			return true
		}
	}
	return false
}

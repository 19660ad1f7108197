package user

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleLeader  Role = "LEADER"
	RoleAdvisor Role = "ADVISOR"
	RoleTrainee Role = "TRAINEE"
)

var AllRoles = []Role{
	RoleAdmin,
	RoleLeader,
	RoleAdvisor,
	RoleTrainee,
}

func (r Role) IsValid() bool {
	for _, v := range AllRoles {
		if r == v {
			return true
		}
	}
	return false
}

// TargetScope selects which period a personal target applies to.
type TargetScope string

const (
	TargetDaily   TargetScope = "daily"
	TargetWeekly  TargetScope = "weekly"
	TargetMonthly TargetScope = "monthly"
)

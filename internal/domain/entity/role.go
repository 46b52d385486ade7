package entity

// Role represents an account role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants, seeded by the initial migration
const (
	RoleIDAdmin   = 1
	RoleIDDoctor  = 2
	RoleIDPatient = 3
)

// Role name constants
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// RoleNameByID maps a role ID to its name, or "" for an unknown ID.
func RoleNameByID(id int) string {
	switch id {
	case RoleIDAdmin:
		return RoleAdmin
	case RoleIDDoctor:
		return RoleDoctor
	case RoleIDPatient:
		return RolePatient
	default:
		return ""
	}
}

// RoleIDByName maps a signup role tag to its role ID. Doctor accounts
// are excluded on purpose: they are only created through the admin
// doctor-creation flow, which also writes the profile.
func RoleIDByName(name string) (int, bool) {
	switch name {
	case RoleAdmin:
		return RoleIDAdmin, true
	case RolePatient:
		return RoleIDPatient, true
	default:
		return 0, false
	}
}

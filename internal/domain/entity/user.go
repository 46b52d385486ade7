package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized account table. Every role shares the
// same email namespace: patients, admins and doctors all get a row here,
// so a duplicate email across roles is impossible by construction.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Contact   string    `gorm:"type:varchar(11)" json:"contact,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role          Role           `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	DoctorProfile *DoctorProfile `gorm:"foreignKey:UserID" json:"doctor_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// internal/models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	BaseModel
	FullName     string     `json:"full_name" gorm:"size:255;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Phone        string     `json:"phone,omitempty" gorm:"size:20"`
	Organization string     `json:"organization,omitempty" gorm:"size:255"`
	Address      string     `json:"address,omitempty" gorm:"type:text"`
	AvatarURL    string     `json:"avatar_url,omitempty" gorm:"size:512"`
	LastLoginAt  *time.Time `json:"last_login_at"`

	// Relationships
	Roles        []UserRole    `json:"roles,omitempty" gorm:"foreignKey:UserID"`
	Applications []Application `json:"applications,omitempty" gorm:"foreignKey:ApplicantID"`
	Buildings    []Building    `json:"buildings,omitempty" gorm:"foreignKey:OwnerID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// RoleNames returns the user's role slugs. A user with no role rows is a
// plain applicant.
func (u *User) RoleNames() []string {
	if len(u.Roles) == 0 {
		return []string{string(RoleApplicant)}
	}
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, string(r.Role))
	}
	return names
}

type UserRole struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	UserID     uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_roles_user_role"`
	Role       AppRole    `json:"role" gorm:"type:varchar(20);not null;uniqueIndex:idx_user_roles_user_role"`
	AssignedAt time.Time  `json:"assigned_at" gorm:"autoCreateTime"`
	AssignedBy *uuid.UUID `json:"assigned_by" gorm:"type:uuid"`
}

func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

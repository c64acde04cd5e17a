package models

import "time"

type UserRole string

const (
	RolePendingApproval   UserRole = "pending_approval"
	RoleAdmin             UserRole = "admin"
	RoleChineseTranslator UserRole = "chinese_translator"
	RoleKoreanTranslator  UserRole = "korean_translator"
	RoleDisabled          UserRole = "disabled"
)

// AssignableRoles are the roles an approval link may grant.
var AssignableRoles = []UserRole{RoleAdmin, RoleChineseTranslator, RoleKoreanTranslator}

// ParseAssignableRole validates a role requested through an approval link.
func ParseAssignableRole(raw string) (UserRole, error) {
	for _, r := range AssignableRoles {
		if UserRole(raw) == r {
			return r, nil
		}
	}
	return "", ValidationError{Field: "role", Message: "role cannot be granted via approval"}
}

// User is created on first external sign-in and never hard-deleted here.
// The ID is the identity provider's uuid.
type User struct {
	ID        string    `json:"id" gorm:"primarykey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-"`
	Role      UserRole  `json:"role" gorm:"default:'pending_approval'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

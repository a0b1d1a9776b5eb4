package domain

import (
	"fmt"
	"strings"
	"time"
)

type User struct {
	ID         string
	TelegramID int64
	FullName   string
	Role       Role
	Department string
	Status     UserStatus
	ProjectID  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RoleName is the name used to match workflow step initiators: the
// department when set, else the role, else "user".
func (u *User) RoleName() string {
	if u == nil {
		return "user"
	}
	return CoalesceStr(u.Department, string(u.Role), "user")
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// RoleLabel returns the greeting label shown on the dashboard.
func (u *User) RoleLabel() string {
	return CoalesceStr(string(u.Role), "СОТРУДНИК")
}

// Validate checks the fields an administrator can edit.
func (u *User) Validate() error {
	if u.TelegramID <= 0 {
		return fmt.Errorf("%w: telegram id must be positive", ErrValidation)
	}
	if strings.TrimSpace(u.FullName) == "" {
		return fmt.Errorf("%w: full name is required", ErrValidation)
	}
	if u.Role != "" && !u.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, u.Role)
	}
	if u.Department != "" && !ValidDepartment(u.Department) {
		return fmt.Errorf("%w: unknown department %q", ErrValidation, u.Department)
	}
	if !u.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, u.Status)
	}
	return nil
}

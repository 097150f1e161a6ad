package model

import (
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

type Capability int

const (
	CapUpload Capability = iota
	CapProposeVersion
	CapApprove
	CapDelete
)

// rolePermissions is the full permission matrix. Roles not listed here
// (or unknown roles coming from a stale token) have no capabilities.
var rolePermissions = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapUpload:         true,
		CapProposeVersion: true,
		CapApprove:        true,
		CapDelete:         true,
	},
	RoleEditor: {
		CapUpload:         true,
		CapProposeVersion: true,
	},
	RoleViewer: {},
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor || r == RoleViewer
}

func (r Role) Can(c Capability) bool {
	return rolePermissions[r][c]
}

type User struct {
	gorm.Model
	Username string `json:"username" gorm:"uniqueIndex;size:150"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     Role   `json:"role" gorm:"type:varchar(10);default:'viewer'"`
}

func (u *User) SanitizePassword() {
	u.Password = ""
}

func (u *User) Principal() Principal {
	return Principal{UserID: u.ID, Role: u.Role}
}

// Principal is the authenticated caller, passed explicitly into every
// service operation. There is no ambient request-scoped identity.
type Principal struct {
	UserID uint `json:"user_id"`
	Role   Role `json:"role"`
}

func (p Principal) Can(c Capability) bool {
	return p.Role.Can(c)
}

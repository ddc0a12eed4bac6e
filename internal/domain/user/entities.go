package user

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleVerifier Role = "verifier"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleVerifier }

// Table: users. Collection: users.
type User struct {
	PK        uint64    `gorm:"column:pk;primaryKey;autoIncrement" bson:"-" json:"-"`
	Address   string    `gorm:"column:address;size:42;uniqueIndex:ux_users_address;not null" bson:"address" json:"address"`
	Policies  []string  `gorm:"column:policies;serializer:json" bson:"policies" json:"policies"`
	Claims    []string  `gorm:"column:claims;serializer:json" bson:"claims" json:"claims"`
	Roles     []Role    `gorm:"column:roles;serializer:json" bson:"roles" json:"roles"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" bson:"updatedAt" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) HasRole(roles ...Role) bool {
	for _, have := range u.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Role IDs are fixed so that JWT claims and route guards can refer to them
// without a lookup.
const (
	RoleAdmin        uint32 = 1
	RoleMember       uint32 = 2
	RoleTrainer      uint32 = 3
	RoleNutritionist uint32 = 4
	RoleFrontDesk    uint32 = 5
)

var roleNames = map[uint32]string{
	RoleAdmin:        "admin",
	RoleMember:       "member",
	RoleTrainer:      "trainer",
	RoleNutritionist: "nutritionist",
	RoleFrontDesk:    "front_desk",
}

type Role struct {
	ID        uint32    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleName returns the canonical name for a role id, or "" when unknown.
func RoleName(id uint32) string {
	return roleNames[id]
}

// RoleIDByName resolves a role name as used in API payloads.
func RoleIDByName(name string) (uint32, bool) {
	for id, n := range roleNames {
		if n == name {
			return id, true
		}
	}
	return 0, false
}

// IsStaffRole reports whether the role is created by an admin rather than by signup.
func IsStaffRole(id uint32) bool {
	return id == RoleAdmin || id == RoleTrainer || id == RoleNutritionist || id == RoleFrontDesk
}

// SeedRoles inserts the fixed role catalog. Existing rows are left untouched.
func SeedRoles(db *gorm.DB) error {
	for _, id := range []uint32{RoleAdmin, RoleMember, RoleTrainer, RoleNutritionist, RoleFrontDesk} {
		role := Role{ID: id, Name: roleNames[id]}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role.Name, err)
		}
	}
	return nil
}

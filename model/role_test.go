package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedRolesIsIdempotent(t *testing.T) {
	db := setupTestDB(t, "roles", &Role{})

	assert.NoError(t, SeedRoles(db))
	assert.NoError(t, SeedRoles(db))

	var count int64
	assert.NoError(t, db.Model(&Role{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)

	var admin Role
	assert.NoError(t, db.First(&admin, RoleAdmin).Error)
	assert.Equal(t, "admin", admin.Name)
}

func TestRoleNameLookup(t *testing.T) {
	assert.Equal(t, "front_desk", RoleName(RoleFrontDesk))
	assert.Equal(t, "", RoleName(99))

	id, ok := RoleIDByName("trainer")
	assert.True(t, ok)
	assert.Equal(t, RoleTrainer, id)

	_, ok = RoleIDByName("owner")
	assert.False(t, ok)

	assert.True(t, IsStaffRole(RoleNutritionist))
	assert.False(t, IsStaffRole(RoleMember))
}

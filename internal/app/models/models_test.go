package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfileCanAssumeRole(t *testing.T) {
	unset := &Profile{Role: RoleUnset}
	assert.True(t, unset.CanAssumeRole(RoleTutor))
	assert.True(t, unset.CanAssumeRole(RoleStudent))

	student := &Profile{Role: RoleStudent}
	assert.True(t, student.CanAssumeRole(RoleStudent))
	assert.False(t, student.CanAssumeRole(RoleTutor))

	admin := &Profile{Role: RoleAdmin}
	assert.True(t, admin.CanAssumeRole(RoleTutor))
	assert.True(t, admin.CanAssumeRole(RoleStudent))
}

func TestRelationshipStatus(t *testing.T) {
	assert.Equal(t, "pending", (&Relationship{}).Status())
	assert.Equal(t, "active", (&Relationship{IsActive: true}).Status())
}

func TestRefreshTokenValid(t *testing.T) {
	now := time.Now()

	live := &RefreshToken{ExpiresAt: now.Add(time.Hour)}
	assert.True(t, live.Valid(now))

	expired := &RefreshToken{ExpiresAt: now.Add(-time.Hour)}
	assert.False(t, expired.Valid(now))

	revoked := &RefreshToken{ExpiresAt: now.Add(time.Hour), Revoked: true}
	assert.False(t, revoked.Valid(now))
}

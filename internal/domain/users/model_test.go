package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleForEmail(t *testing.T) {
	admins := []string{"curator@example.com", " Owner@Example.com "}

	assert.Equal(t, RoleAdmin, RoleForEmail("curator@example.com", admins))
	assert.Equal(t, RoleAdmin, RoleForEmail("OWNER@example.com", admins))
	assert.Equal(t, RoleViewer, RoleForEmail("visitor@example.com", admins))
	assert.Equal(t, RoleViewer, RoleForEmail("", []string{""}))
}

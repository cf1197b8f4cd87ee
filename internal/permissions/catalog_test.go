package permissions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	assert.Len(t, c.Permissions(), 18)
	assert.Equal(t, []string{RoleAdmin, RoleProfessional, RoleSecretary, RoleLeadSecretary}, c.Roles())

	// the administrator holds every permission
	assert.Len(t, c.DefaultsForRole(RoleAdmin), len(c.Permissions()))

	assert.True(t, c.RoleGrants(RoleSecretary, PatientsRead))
	assert.False(t, c.RoleGrants(RoleSecretary, NotificationsSend))
	assert.True(t, c.RoleGrants(RoleLeadSecretary, NotificationsSend))
	assert.False(t, c.RoleGrants(RoleProfessional, PatientsDelete))
}

func TestCatalogUnknownRoleIsEmpty(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	assert.Empty(t, c.DefaultsForRole("not_a_role"))
	assert.Empty(t, c.RoleDefaults("not_a_role"))
	assert.False(t, c.IsRole("not_a_role"))
	assert.False(t, c.RoleGrants("not_a_role", PatientsRead))
}

func TestCatalogAccessorsReturnCopies(t *testing.T) {
	c, err := NewCatalog([]string{"a.leer", "a.crear"}, map[string][]string{"r": {"a.leer"}})
	require.NoError(t, err)

	defaults := c.DefaultsForRole("r")
	defaults["a.crear"] = struct{}{}
	assert.False(t, c.RoleGrants("r", "a.crear"))

	names := c.Permissions()
	names[0] = "mutated"
	assert.True(t, c.Contains("a.leer"))
	assert.False(t, c.Contains("mutated"))
}

func TestCatalogRoleDefaultsKeepCatalogOrder(t *testing.T) {
	c, err := NewCatalog([]string{"x.a", "x.b", "x.c"}, map[string][]string{"r": {"x.c", "x.a"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"x.a", "x.c"}, c.RoleDefaults("r"))
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name  string
		perms []string
		roles map[string][]string
		want  string
	}{
		{name: "empty permission", perms: []string{" "}, want: "empty permission"},
		{name: "duplicate permission", perms: []string{"a.leer", "a.leer"}, want: "duplicate permission"},
		{name: "role grants unknown", perms: []string{"a.leer"}, roles: map[string][]string{"r": {"b.leer"}}, want: "unknown permission"},
		{name: "empty role", perms: []string{"a.leer"}, roles: map[string][]string{"": {"a.leer"}}, want: "empty role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.perms, tt.roles)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadCatalogRejectsUnknownKeys(t *testing.T) {
	doc := `
permisos:
  - nombre: a.leer
rols:
  r: [a.leer]
`
	_, err := LoadCatalog(strings.NewReader(doc))
	require.Error(t, err)
}

func TestLoadCatalog(t *testing.T) {
	doc := `
permisos:
  - nombre: a.leer
    descripcion: leer a
  - nombre: a.crear
roles:
  lector: [a.leer]
`
	c, err := LoadCatalog(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []Definition{{Name: "a.leer", Description: "leer a"}, {Name: "a.crear"}}, c.Definitions())
	assert.True(t, c.IsRole("lector"))
}

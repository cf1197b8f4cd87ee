package permissions

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Role names shipped in the embedded catalog.
const (
	RoleAdmin         = "administrador"
	RoleLeadSecretary = "secretaria_jefe"
	RoleSecretary     = "secretaria"
	RoleProfessional  = "profesional"
)

// Permission names shipped in the embedded catalog.
const (
	UsersRead   = "usuarios.leer"
	UsersCreate = "usuarios.crear"
	UsersEdit   = "usuarios.editar"
	UsersDelete = "usuarios.eliminar"

	PatientsRead   = "pacientes.leer"
	PatientsCreate = "pacientes.crear"
	PatientsEdit   = "pacientes.editar"
	PatientsDelete = "pacientes.eliminar"

	ProfessionalsRead   = "profesionales.leer"
	ProfessionalsCreate = "profesionales.crear"
	ProfessionalsEdit   = "profesionales.editar"
	ProfessionalsDelete = "profesionales.eliminar"

	PermissionsRead   = "permisos.leer"
	PermissionsAssign = "permisos.asignar"

	NotificationsRead = "notificaciones.leer"
	NotificationsSend = "notificaciones.enviar"

	LogsRead   = "logs.leer"
	LogsDelete = "logs.eliminar"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// Definition describes one permission of the catalog.
type Definition struct {
	Name        string `yaml:"nombre" json:"nombre"`
	Description string `yaml:"descripcion" json:"descripcion"`
}

type catalogFile struct {
	Permissions []Definition        `yaml:"permisos"`
	Roles       map[string][]string `yaml:"roles"`
}

// Catalog is the immutable set of valid permissions and role defaults.
// Build it once at startup and share it; no method mutates it.
type Catalog struct {
	definitions []Definition
	index       map[string]struct{}
	roles       map[string]map[string]struct{}
}

// DefaultCatalog parses the catalog embedded in the binary.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(bytes.NewReader(embeddedCatalog))
}

// LoadCatalog parses a YAML catalog document.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("permissions: decode catalog: %w", err)
	}
	return newCatalog(f.Permissions, f.Roles)
}

// NewCatalog builds a catalog from plain names, mainly for tests and tooling.
func NewCatalog(perms []string, roles map[string][]string) (*Catalog, error) {
	defs := make([]Definition, 0, len(perms))
	for _, p := range perms {
		defs = append(defs, Definition{Name: p})
	}
	return newCatalog(defs, roles)
}

func newCatalog(defs []Definition, roles map[string][]string) (*Catalog, error) {
	c := &Catalog{
		definitions: make([]Definition, 0, len(defs)),
		index:       make(map[string]struct{}, len(defs)),
		roles:       make(map[string]map[string]struct{}, len(roles)),
	}

	for _, d := range defs {
		d.Name = strings.TrimSpace(d.Name)
		if d.Name == "" {
			return nil, fmt.Errorf("permissions: empty permission name")
		}
		if _, dup := c.index[d.Name]; dup {
			return nil, fmt.Errorf("permissions: duplicate permission %q", d.Name)
		}
		c.index[d.Name] = struct{}{}
		c.definitions = append(c.definitions, d)
	}

	for role, granted := range roles {
		role = strings.TrimSpace(role)
		if role == "" {
			return nil, fmt.Errorf("permissions: empty role name")
		}
		set := make(map[string]struct{}, len(granted))
		for _, p := range granted {
			if _, ok := c.index[p]; !ok {
				return nil, fmt.Errorf("permissions: role %q grants unknown permission %q", role, p)
			}
			set[p] = struct{}{}
		}
		c.roles[role] = set
	}

	return c, nil
}

// Contains reports whether name is a recognized permission.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// IsRole reports whether role has an entry in the catalog.
func (c *Catalog) IsRole(role string) bool {
	_, ok := c.roles[role]
	return ok
}

// Permissions returns all permission names in catalog order.
func (c *Catalog) Permissions() []string {
	names := make([]string, len(c.definitions))
	for i, d := range c.definitions {
		names[i] = d.Name
	}
	return names
}

// Definitions returns the permission definitions in catalog order.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.definitions))
	copy(out, c.definitions)
	return out
}

// Roles returns the role names, sorted.
func (c *Catalog) Roles() []string {
	names := make([]string, 0, len(c.roles))
	for r := range c.roles {
		names = append(names, r)
	}
	sort.Strings(names)
	return names
}

// DefaultsForRole returns a copy of the role's default permission set.
// Unknown roles get an empty set.
func (c *Catalog) DefaultsForRole(role string) map[string]struct{} {
	set := make(map[string]struct{}, len(c.roles[role]))
	for p := range c.roles[role] {
		set[p] = struct{}{}
	}
	return set
}

// RoleGrants reports whether role's defaults include permission.
func (c *Catalog) RoleGrants(role, permission string) bool {
	_, ok := c.roles[role][permission]
	return ok
}

// RoleDefaults lists the defaults of role in catalog order.
func (c *Catalog) RoleDefaults(role string) []string {
	granted := c.roles[role]
	names := make([]string, 0, len(granted))
	for _, d := range c.definitions {
		if _, ok := granted[d.Name]; ok {
			names = append(names, d.Name)
		}
	}
	return names
}

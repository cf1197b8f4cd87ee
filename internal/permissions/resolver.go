package permissions

import (
	"context"
	"errors"
	"fmt"

	"consultorio/internal/domain/overrides"
)

// ErrUnknownPermission is returned by mutating operations given a name outside the catalog.
var ErrUnknownPermission = errors.New("permissions: unknown permission")

// OverrideStore is the persistence the resolver needs for per-user exceptions.
// FindByUserAndPermission must return overrides.ErrNotFound when no row exists.
type OverrideStore interface {
	FindByUser(ctx context.Context, userID int64) ([]overrides.Override, error)
	FindByUserAndPermission(ctx context.Context, userID int64, permission string) (*overrides.Override, error)
	Insert(ctx context.Context, userID int64, permission string, active bool) (*overrides.Override, error)
	UpdateActive(ctx context.Context, id int64, active bool) (*overrides.Override, error)
	Delete(ctx context.Context, userID int64, permission string) error
}

// Source tells which layer produced a decision.
type Source string

const (
	SourceInvalid  Source = "invalid"
	SourceOverride Source = "override"
	SourceRole     Source = "role"
	SourceNone     Source = "none"
)

// Decision is the outcome of a single permission check.
type Decision struct {
	Permission string `json:"permiso"`
	Allowed    bool   `json:"permitido"`
	Source     Source `json:"origen"`
}

// Resolver combines role defaults from the catalog with stored overrides.
// It keeps no state between calls and is safe for concurrent use.
type Resolver struct {
	catalog *Catalog
	store   OverrideStore
}

func NewResolver(catalog *Catalog, store OverrideStore) *Resolver {
	return &Resolver{catalog: catalog, store: store}
}

// WithStore returns a resolver over the same catalog backed by store, typically
// the override repository of a transaction.
func (r *Resolver) WithStore(store OverrideStore) *Resolver {
	return &Resolver{catalog: r.catalog, store: store}
}

// Catalog returns the catalog the resolver was built with.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// IsValidPermission reports catalog membership.
func (r *Resolver) IsValidPermission(name string) bool {
	return r.catalog.Contains(name)
}

// Evaluate resolves one permission for a principal. An override, when present,
// wins over the role default in both directions.
func (r *Resolver) Evaluate(ctx context.Context, userID int64, role, permission string) (Decision, error) {
	d := Decision{Permission: permission}
	if !r.IsValidPermission(permission) {
		d.Source = SourceInvalid
		return d, nil
	}

	o, err := r.store.FindByUserAndPermission(ctx, userID, permission)
	switch {
	case err == nil:
		d.Allowed = o.Active
		d.Source = SourceOverride
		return d, nil
	case !errors.Is(err, overrides.ErrNotFound):
		return Decision{Permission: permission}, fmt.Errorf("resolve %s for user %d: %w", permission, userID, err)
	}

	if r.catalog.RoleGrants(role, permission) {
		d.Allowed = true
		d.Source = SourceRole
		return d, nil
	}
	d.Source = SourceNone
	return d, nil
}

// HasPermission is the point query used on every gated request.
func (r *Resolver) HasPermission(ctx context.Context, userID int64, role, permission string) (bool, error) {
	d, err := r.Evaluate(ctx, userID, role, permission)
	if err != nil {
		return false, err
	}
	return d.Allowed, nil
}

// CanAccess is HasPermission under another name.
func (r *Resolver) CanAccess(ctx context.Context, userID int64, role, permission string) (bool, error) {
	return r.HasPermission(ctx, userID, role, permission)
}

// GetUserPermissions returns the effective set: role defaults as true, then every
// stored override applied on top. Permissions missing from the map are not granted.
func (r *Resolver) GetUserPermissions(ctx context.Context, userID int64, role string) (map[string]bool, error) {
	result := make(map[string]bool)
	for p := range r.catalog.DefaultsForRole(role) {
		result[p] = true
	}

	list, err := r.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load overrides for user %d: %w", userID, err)
	}

	// list is newest first; apply oldest first so the newest row for a pair wins,
	// the same row FindByUserAndPermission would return.
	for i := len(list) - 1; i >= 0; i-- {
		o := list[i]
		if !r.catalog.Contains(o.Permission) {
			continue
		}
		result[o.Permission] = o.Active
	}
	return result, nil
}

// Grant sets an active override for the pair, creating it if needed.
func (r *Resolver) Grant(ctx context.Context, userID int64, permission string) (*overrides.Override, error) {
	return r.set(ctx, userID, permission, true)
}

// Revoke sets an inactive override for the pair, creating it if needed. The row is
// kept even when the role never had the permission.
func (r *Resolver) Revoke(ctx context.Context, userID int64, permission string) (*overrides.Override, error) {
	return r.set(ctx, userID, permission, false)
}

// ResetOverride deletes the user's override so the role default applies again.
func (r *Resolver) ResetOverride(ctx context.Context, userID int64, permission string) error {
	if !r.IsValidPermission(permission) {
		return fmt.Errorf("%w: %q", ErrUnknownPermission, permission)
	}
	return r.store.Delete(ctx, userID, permission)
}

func (r *Resolver) set(ctx context.Context, userID int64, permission string, active bool) (*overrides.Override, error) {
	if !r.IsValidPermission(permission) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPermission, permission)
	}

	existing, err := r.store.FindByUserAndPermission(ctx, userID, permission)
	switch {
	case err == nil:
		updated, err := r.store.UpdateActive(ctx, existing.ID, active)
		switch {
		case err == nil:
			return updated, nil
		case errors.Is(err, overrides.ErrNotFound):
			// reset between the lookup and the update
			return r.store.Insert(ctx, userID, permission, active)
		default:
			return nil, fmt.Errorf("update override %d: %w", existing.ID, err)
		}
	case errors.Is(err, overrides.ErrNotFound):
		return r.store.Insert(ctx, userID, permission, active)
	default:
		return nil, fmt.Errorf("lookup override %s for user %d: %w", permission, userID, err)
	}
}

package permissions

import (
	"context"
	"sync"
	"time"

	"consultorio/internal/domain/overrides"
)

// memStore keeps override rows in insertion order. Duplicate pairs are allowed so
// tests can reproduce rows written before the unique constraint existed.
type memStore struct {
	mu     sync.Mutex
	rows   []overrides.Override
	nextID int64
	clock  time.Time

	findErr   error
	listErr   error
	insertErr error
	updateErr error

	inserts int
	updates int
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, clock: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

// seed appends a raw row, bypassing grant/revoke.
func (m *memStore) seed(userID int64, permission string, active bool) overrides.Override {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := overrides.Override{ID: m.nextID, UserID: userID, Permission: permission, Active: active, AssignedAt: m.tick()}
	m.nextID++
	m.rows = append(m.rows, o)
	return o
}

func (m *memStore) FindByUser(ctx context.Context, userID int64) ([]overrides.Override, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []overrides.Override
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID == userID {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

func (m *memStore) FindByUserAndPermission(ctx context.Context, userID int64, permission string) (*overrides.Override, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID == userID && m.rows[i].Permission == permission {
			o := m.rows[i]
			return &o, nil
		}
	}
	return nil, overrides.ErrNotFound
}

func (m *memStore) Insert(ctx context.Context, userID int64, permission string, active bool) (*overrides.Override, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	m.inserts++
	o := overrides.Override{ID: m.nextID, UserID: userID, Permission: permission, Active: active, AssignedAt: m.tick()}
	m.nextID++
	m.rows = append(m.rows, o)
	return &o, nil
}

func (m *memStore) UpdateActive(ctx context.Context, id int64, active bool) (*overrides.Override, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.updates++
			m.rows[i].Active = active
			m.rows[i].AssignedAt = m.tick()
			o := m.rows[i]
			return &o, nil
		}
	}
	return nil, overrides.ErrNotFound
}

func (m *memStore) Delete(ctx context.Context, userID int64, permission string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.rows[:0]
	removed := 0
	for _, o := range m.rows {
		if o.UserID == userID && o.Permission == permission {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	m.rows = kept
	if removed == 0 {
		return overrides.ErrNotFound
	}
	return nil
}

func (m *memStore) rowsFor(userID int64, permission string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, o := range m.rows {
		if o.UserID == userID && o.Permission == permission {
			n++
		}
	}
	return n
}

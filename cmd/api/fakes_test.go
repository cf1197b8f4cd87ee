package main

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"consultorio/internal/domain/errorlogs"
	"consultorio/internal/domain/notifications"
	"consultorio/internal/domain/overrides"
	"consultorio/internal/domain/patients"
	"consultorio/internal/domain/professionals"
	"consultorio/internal/domain/storage"
	"consultorio/internal/domain/users"
)

var errStoreDown = errors.New("connection refused")

type fakeUsers struct {
	mu     sync.Mutex
	rows   map[int64]*users.User
	nextID int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{rows: make(map[int64]*users.User), nextID: 1}
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.rows {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, users.ErrNotFound
}

func (f *fakeUsers) Create(_ context.Context, u *users.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.rows {
		if strings.EqualFold(existing.Email, u.Email) {
			return users.ErrDuplicateEmail
		}
	}
	u.ID = f.nextID
	f.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeUsers) Update(_ context.Context, u *users.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[u.ID]; !ok {
		return users.ErrNotFound
	}
	for id, existing := range f.rows {
		if id != u.ID && strings.EqualFold(existing.Email, u.Email) {
			return users.ErrDuplicateEmail
		}
	}
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return users.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeUsers) List(_ context.Context, filter users.ListFilter, limit, offset int) ([]users.User, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []users.User
	for _, u := range f.rows {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), len(out), nil
}

func page[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

// fakeOverrides keeps rows newest first, like the SQL store.
type fakeOverrides struct {
	mu     sync.Mutex
	rows   []overrides.Override
	nextID int64
	err    error
}

func (f *fakeOverrides) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeOverrides) FindByUser(_ context.Context, userID int64) ([]overrides.Override, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []overrides.Override{}
	for _, o := range f.rows {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOverrides) FindByUserAndPermission(_ context.Context, userID int64, permission string) (*overrides.Override, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, o := range f.rows {
		if o.UserID == userID && o.Permission == permission {
			cp := o
			return &cp, nil
		}
	}
	return nil, overrides.ErrNotFound
}

func (f *fakeOverrides) Insert(_ context.Context, userID int64, permission string, active bool) (*overrides.Override, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	o := overrides.Override{ID: f.nextID, UserID: userID, Permission: permission, Active: active, AssignedAt: time.Now()}
	f.rows = append([]overrides.Override{o}, f.rows...)
	return &o, nil
}

func (f *fakeOverrides) UpdateActive(_ context.Context, id int64, active bool) (*overrides.Override, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Active = active
			f.rows[i].AssignedAt = time.Now()
			cp := f.rows[i]
			return &cp, nil
		}
	}
	return nil, overrides.ErrNotFound
}

func (f *fakeOverrides) Delete(_ context.Context, userID int64, permission string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for i, o := range f.rows {
		if o.UserID == userID && o.Permission == permission {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return overrides.ErrNotFound
}

type fakePatients struct {
	mu        sync.Mutex
	codec     *patients.Codec
	rows      map[int64]*patients.Patient
	nextID    int64
	listCalls int
	listErr   error
}

func newFakePatients(codec *patients.Codec) *fakePatients {
	return &fakePatients{codec: codec, rows: make(map[int64]*patients.Patient), nextID: 1}
}

func (f *fakePatients) GetByID(_ context.Context, id int64) (*patients.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return nil, patients.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePatients) Create(_ context.Context, p *patients.Patient) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.rows {
		if existing.Document == p.Document {
			return patients.ErrConflict
		}
	}
	p.ID = f.nextID
	f.nextID++
	code, err := f.codec.Encode(p.ID)
	if err != nil {
		return err
	}
	p.Code = code
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePatients) Update(_ context.Context, p *patients.Patient) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[p.ID]; !ok {
		return patients.ErrNotFound
	}
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePatients) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return patients.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakePatients) List(_ context.Context, filter patients.ListFilter, limit, offset int) ([]patients.Patient, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	var out []patients.Patient
	for _, p := range f.rows {
		if filter.ProfessionalID != nil && (p.ProfessionalID == nil || *p.ProfessionalID != *filter.ProfessionalID) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), len(out), nil
}

func (f *fakePatients) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

type fakeProfessionals struct {
	mu     sync.Mutex
	rows   map[int64]*professionals.Professional
	nextID int64
}

func newFakeProfessionals() *fakeProfessionals {
	return &fakeProfessionals{rows: make(map[int64]*professionals.Professional), nextID: 1}
}

func (f *fakeProfessionals) GetByID(_ context.Context, id int64) (*professionals.Professional, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return nil, professionals.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfessionals) Create(_ context.Context, p *professionals.Professional) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.rows {
		if existing.License == p.License {
			return professionals.ErrConflict
		}
	}
	p.ID = f.nextID
	f.nextID++
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakeProfessionals) Update(_ context.Context, p *professionals.Professional) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[p.ID]; !ok {
		return professionals.ErrNotFound
	}
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakeProfessionals) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return professionals.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeProfessionals) List(_ context.Context, filter professionals.ListFilter, limit, offset int) ([]professionals.Professional, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []professionals.Professional
	for _, p := range f.rows {
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		if filter.Specialty != "" && p.Specialty != filter.Specialty {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), len(out), nil
}

type fakeNotifications struct {
	mu     sync.Mutex
	rows   map[int64]*notifications.Notification
	nextID int64
}

func newFakeNotifications() *fakeNotifications {
	return &fakeNotifications{rows: make(map[int64]*notifications.Notification), nextID: 1}
}

func (f *fakeNotifications) Create(_ context.Context, n *notifications.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = f.nextID
	f.nextID++
	n.Status = notifications.StatusPending
	n.CreatedAt = time.Now()
	cp := *n
	f.rows[n.ID] = &cp
	return nil
}

func (f *fakeNotifications) GetByID(_ context.Context, id int64) (*notifications.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.rows[id]
	if !ok {
		return nil, notifications.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNotifications) List(_ context.Context, filter notifications.ListFilter, limit, offset int) ([]notifications.Notification, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []notifications.Notification
	for _, n := range f.rows {
		if filter.Status != "" && n.Status != filter.Status {
			continue
		}
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, limit, offset), len(out), nil
}

func (f *fakeNotifications) MarkSent(_ context.Context, id int64) error {
	return f.mark(id, notifications.StatusSent, nil)
}

func (f *fakeNotifications) MarkFailed(_ context.Context, id int64, reason string) error {
	return f.mark(id, notifications.StatusFailed, &reason)
}

func (f *fakeNotifications) mark(id int64, status string, reason *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.rows[id]
	if !ok {
		return notifications.ErrNotFound
	}
	n.Status = status
	n.Error = reason
	return nil
}

type fakeErrorLogs struct {
	mu      sync.Mutex
	entries []errorlogs.Entry
}

func (f *fakeErrorLogs) Insert(_ context.Context, e *errorlogs.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = int64(len(f.entries) + 1)
	e.CreatedAt = time.Now()
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeErrorLogs) List(_ context.Context, limit, offset int) ([]errorlogs.Entry, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]errorlogs.Entry(nil), f.entries...)
	return page(out, limit, offset), len(out), nil
}

func (f *fakeErrorLogs) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return errorlogs.ErrNotFound
}

func (f *fakeErrorLogs) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []errorlogs.Entry
	for _, e := range f.entries {
		if !e.CreatedAt.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	n := int64(len(f.entries) - len(kept))
	f.entries = kept
	return n, nil
}

func (f *fakeErrorLogs) all() []errorlogs.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]errorlogs.Entry(nil), f.entries...)
}

type fakeDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (f *fakeDenylist) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[jti] = expiresAt
	return nil
}

func (f *fakeDenylist) RevokeOnce(_ context.Context, jti string, expiresAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.revoked[jti]; ok {
		return false, nil
	}
	f.revoked[jti] = expiresAt
	return true, nil
}

func (f *fakeDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.revoked[jti]
	return ok, nil
}

// fakeTx hands fn the shared fakes. Rows written before an error are kept.
type fakeTx struct {
	users     *fakeUsers
	overrides *fakeOverrides
	patients  *fakePatients

	mu   sync.Mutex
	runs int
	err  error
}

func (f *fakeTx) WithTx(_ context.Context, fn func(tx *storage.Tx) error) error {
	f.mu.Lock()
	f.runs++
	err := f.err
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return fn(&storage.Tx{Users: f.users, Overrides: f.overrides, Patients: f.patients})
}

func (f *fakeTx) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runs
}

type fakeQueue struct {
	mu  sync.Mutex
	ids []int64
	err error
}

func (f *fakeQueue) EnqueueNotification(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.ids = append(f.ids, id)
	return nil
}

func (f *fakeQueue) queued() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.ids...)
}

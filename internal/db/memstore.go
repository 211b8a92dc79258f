package db

import (
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/beacon-signage/beacon/internal/model"
)

// MemStore is an in-memory Store used by handler tests and local
// experimentation. Not safe for production use.
type MemStore struct {
	mu       sync.Mutex
	users    map[int]*model.User
	displays map[int]*model.Display
	nextID   int
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		users:    make(map[int]*model.User),
		displays: make(map[int]*model.Display),
		nextID:   1,
	}
}

func (m *MemStore) allocID() int {
	id := m.nextID
	m.nextID++
	return id
}

func (m *MemStore) CreateUser(username, hashedPassword string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.allocID()
	m.users[id] = &model.User{
		ID:             id,
		Username:       username,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now(),
	}
	return id, nil
}

func (m *MemStore) GetUserByUsername(username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MemStore) GetUserByID(id int) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (m *MemStore) CountUsers() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

func (m *MemStore) ListDisplays() ([]model.DisplaySummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.DisplaySummary, 0, len(m.displays))
	for _, d := range m.displays {
		out = append(out, model.DisplaySummary{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			CreatedAt:   d.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemStore) GetDisplayByID(id int) (*model.Display, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.displays[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *d
	return &copied, nil
}

func (m *MemStore) CreateDisplay(name, description string, layout, background model.Document) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.allocID()
	now := time.Now()
	m.displays[id] = &model.Display{
		ID:               id,
		Name:             name,
		Description:      description,
		LayoutConfig:     layout,
		BackgroundConfig: background,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return id, nil
}

func (m *MemStore) UpdateDisplay(id int, name, description string, layout, background model.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.displays[id]
	if !ok {
		return sql.ErrNoRows
	}
	d.Name = name
	d.Description = description
	d.LayoutConfig = layout
	d.BackgroundConfig = background
	d.UpdatedAt = time.Now()
	return nil
}

func (m *MemStore) DeleteDisplay(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.displays[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.displays, id)
	return nil
}

func (m *MemStore) CountDisplays() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.displays), nil
}

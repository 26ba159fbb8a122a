package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"billed/internal/model"
)

// UserKey is the storage entry holding the serialized current user
const UserKey = "user"

// ErrNoSession is returned when no user blob is present in storage
var ErrNoSession = errors.New("no session: user blob not found")

// Storage is the opaque key-value blob holder the session lives in. The core
// never validates the blobs structurally.
type Storage interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string)
	RemoveItem(key string)
	Clear()
}

// MemoryStorage is an in-process Storage, one per client
type MemoryStorage struct {
	items map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (m *MemoryStorage) GetItem(key string) (string, bool) {
	v, ok := m.items[key]
	return v, ok
}

func (m *MemoryStorage) SetItem(key, value string) {
	m.items[key] = value
}

func (m *MemoryStorage) RemoveItem(key string) {
	delete(m.items, key)
}

func (m *MemoryStorage) Clear() {
	m.items = make(map[string]string)
}

// Manager reads and writes the single current-user record
type Manager struct {
	storage Storage
}

func NewManager(storage Storage) *Manager {
	return &Manager{storage: storage}
}

// User returns the current session, or ErrNoSession when nobody is logged in
func (m *Manager) User() (*model.Session, error) {
	raw, ok := m.storage.GetItem(UserKey)
	if !ok || raw == "" {
		return nil, ErrNoSession
	}
	var s model.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("decode user blob: %w", err)
	}
	return &s, nil
}

// SetUser serializes the session under the user key
func (m *Manager) SetUser(s model.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode user blob: %w", err)
	}
	m.storage.SetItem(UserKey, string(raw))
	return nil
}

// Clear wipes the storage entirely. Irreversible within the current process.
func (m *Manager) Clear() {
	m.storage.Clear()
}

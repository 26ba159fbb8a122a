// Package mocks provides hand-written test doubles for the store interfaces.
package mocks

import (
	"context"

	"billed/internal/model"
	"billed/internal/store"
)

// BillStore is a mock implementation of store.Bills
type BillStore struct {
	Bills []model.Bill

	ListErr   error
	CreateErr error
	UpdateErr error

	ListCalls   int
	CreateCalls int
	UpdateCalls int

	LastUpload *store.Upload
	LastUpdate *model.Bill

	// Ref is returned by Create on success
	Ref store.FileRef

	// OnList, when set, runs before List returns; tests use it to simulate
	// events happening while a fetch is in flight
	OnList func()
}

// NewBillStore creates a mock pre-loaded with the given bills
func NewBillStore(bills ...model.Bill) *BillStore {
	return &BillStore{
		Bills: bills,
		Ref: store.FileRef{
			Key:     "1234",
			FileURL: "/files/1234/justificatif.png",
		},
	}
}

// ForUser satisfies store.Scoper; the mock ignores scoping
func (m *BillStore) ForUser(email string) store.Bills {
	return m
}

func (m *BillStore) List(ctx context.Context) ([]model.Bill, error) {
	m.ListCalls++
	if m.OnList != nil {
		m.OnList()
	}
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]model.Bill, len(m.Bills))
	copy(out, m.Bills)
	return out, nil
}

func (m *BillStore) Create(ctx context.Context, up store.Upload) (*store.FileRef, error) {
	m.CreateCalls++
	m.LastUpload = &up
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	ref := m.Ref
	return &ref, nil
}

func (m *BillStore) Update(ctx context.Context, bill model.Bill) (*model.Bill, error) {
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	if bill.ID == "" {
		bill.ID = "47qAXb6fIm2zOKkLzMro"
	}
	m.LastUpdate = &bill
	m.Bills = append(m.Bills, bill)
	return &bill, nil
}

// UserStore is a mock implementation of store.Users
type UserStore struct {
	Users     map[string]*model.User
	CreateErr error
	FindErr   error
}

func NewUserStore() *UserStore {
	return &UserStore{Users: make(map[string]*model.User)}
}

func (m *UserStore) Create(ctx context.Context, user *model.User) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	user.ID = len(m.Users) + 1
	m.Users[user.Email] = user
	return nil
}

func (m *UserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	return m.Users[email], nil
}

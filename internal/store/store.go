package store

import (
	"context"
	"fmt"

	"billed/internal/model"
)

// Bills is the record-service interface for the "bills" collection. Containers
// depend only on this interface; the real client and the test doubles both
// implement it.
type Bills interface {
	// List returns every bill visible in this store's scope.
	List(ctx context.Context) ([]model.Bill, error)
	// Create uploads an attachment and returns its file reference.
	Create(ctx context.Context, up Upload) (*FileRef, error)
	// Update persists a completed bill record. A bill without an ID is
	// inserted and assigned one.
	Update(ctx context.Context, bill model.Bill) (*model.Bill, error)
}

// Scoper is a Bills store that can also produce views restricted to a single
// user's records
type Scoper interface {
	Bills
	ForUser(email string) Bills
}

// Upload carries the attachment bytes and headers for a file upload
type Upload struct {
	FileName string
	Data     []byte
	Email    string
}

// FileRef identifies a stored attachment
type FileRef struct {
	Key     string `json:"key"`
	FileURL string `json:"fileUrl"`
}

// StatusError is a record-service failure. Its message embeds an HTTP-like
// status code ("Erreur 404"); callers only detect rejection, they never parse
// a structured body.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Erreur %d: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("Erreur %d", e.Code)
}

func (e *StatusError) Unwrap() error { return e.Err }

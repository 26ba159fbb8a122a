package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"billed/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the bill store uses, narrow enough to be
// satisfied by pgxmock in tests.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// BillStore is the PostgreSQL-backed record service. Attachment bytes live on
// disk under uploadsDir keyed by uuid; bill rows live in the bills table.
type BillStore struct {
	db         DB
	uploadsDir string
	email      string // scope; empty means the whole collection (admin)
}

// NewBillStore creates a BillStore over the whole bills collection
func NewBillStore(db DB, uploadsDir string) *BillStore {
	return &BillStore{db: db, uploadsDir: uploadsDir}
}

// ForUser returns a store scoped to a single employee's bills
func (s *BillStore) ForUser(email string) Bills {
	scoped := *s
	scoped.email = email
	return &scoped
}

const billColumns = `id, email, type, name, amount, date, vat, pct, commentary, file_url, file_name, status, comment_admin`

// List returns the bills in this store's scope
func (s *BillStore) List(ctx context.Context) ([]model.Bill, error) {
	sql := `SELECT ` + billColumns + ` FROM bills`
	args := []any{}
	if s.email != "" {
		sql += ` WHERE email = $1`
		args = append(args, s.email)
	}
	sql += ` ORDER BY created_at`

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, &StatusError{Code: 500, Err: fmt.Errorf("query bills: %w", err)}
	}
	defer rows.Close()

	var bills []model.Bill
	for rows.Next() {
		var b model.Bill
		if err := rows.Scan(
			&b.ID, &b.Email, &b.Type, &b.Name, &b.Amount, &b.Date, &b.VAT,
			&b.Pct, &b.Commentary, &b.FileURL, &b.FileName, &b.Status, &b.CommentAdmin,
		); err != nil {
			return nil, &StatusError{Code: 500, Err: fmt.Errorf("scan bill row: %w", err)}
		}
		bills = append(bills, b)
	}
	if err = rows.Err(); err != nil {
		return nil, &StatusError{Code: 500, Err: fmt.Errorf("iterate bill rows: %w", err)}
	}
	return bills, nil
}

// Create stores the uploaded attachment and returns its reference
func (s *BillStore) Create(ctx context.Context, up Upload) (*FileRef, error) {
	if up.FileName == "" {
		return nil, &StatusError{Code: 400, Err: errors.New("missing file name")}
	}

	key := uuid.NewString()
	dir := filepath.Join(s.uploadsDir, key)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, &StatusError{Code: 500, Err: fmt.Errorf("create upload directory: %w", err)}
	}

	name := filepath.Base(up.FileName) // Basic sanitization
	if err := os.WriteFile(filepath.Join(dir, name), up.Data, 0o644); err != nil {
		return nil, &StatusError{Code: 500, Err: fmt.Errorf("save attachment: %w", err)}
	}

	return &FileRef{
		Key:     key,
		FileURL: "/files/" + key + "/" + url.PathEscape(name),
	}, nil
}

// Update persists a bill. Bills without an ID are inserted with a fresh one.
func (s *BillStore) Update(ctx context.Context, bill model.Bill) (*model.Bill, error) {
	if bill.ID == "" {
		bill.ID = uuid.NewString()
		sql := `INSERT INTO bills (id, email, type, name, amount, date, vat, pct, commentary, file_url, file_name, status, comment_admin)
	            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
		_, err := s.db.Exec(ctx, sql,
			bill.ID, bill.Email, bill.Type, bill.Name, bill.Amount, bill.Date, bill.VAT,
			bill.Pct, bill.Commentary, bill.FileURL, bill.FileName, bill.Status, bill.CommentAdmin,
		)
		if err != nil {
			return nil, &StatusError{Code: 500, Err: fmt.Errorf("insert bill: %w", err)}
		}
		return &bill, nil
	}

	sql := `UPDATE bills SET email = $2, type = $3, name = $4, amount = $5, date = $6, vat = $7,
	        pct = $8, commentary = $9, file_url = $10, file_name = $11, status = $12, comment_admin = $13
	        WHERE id = $1`
	tag, err := s.db.Exec(ctx, sql,
		bill.ID, bill.Email, bill.Type, bill.Name, bill.Amount, bill.Date, bill.VAT,
		bill.Pct, bill.Commentary, bill.FileURL, bill.FileName, bill.Status, bill.CommentAdmin,
	)
	if err != nil {
		return nil, &StatusError{Code: 500, Err: fmt.Errorf("update bill: %w", err)}
	}
	if tag.RowsAffected() == 0 {
		return nil, &StatusError{Code: 404, Err: fmt.Errorf("bill %s not found", bill.ID)}
	}
	return &bill, nil
}

package auth

import (
	"context"
	"database/sql"
	"errors"
)

type Account struct {
	AccountID    uint64
	LoginID      string
	PasswordHash string
	Role         string
	LMSUserID    uint64
	CourseID     uint64
	IsDisabled   bool
	CreatedAt    string
}

type AccountStore interface {
	GetByLoginID(ctx context.Context, loginID string) (*Account, error)
	Create(ctx context.Context, a *Account) error
	Delete(ctx context.Context, loginID string) (int64, error)
	UpdateLoginID(ctx context.Context, oldID, newID string) (int64, error)
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) AccountStore {
	return &Store{db: db}
}

func (s *Store) GetByLoginID(ctx context.Context, loginID string) (*Account, error) {
	const q = `
SELECT account_id, login_id, password_hash, role, lms_user_id, course_id, is_disabled, created_at
FROM accounts
WHERE login_id = ?
LIMIT 1
`
	var a Account
	var isDisabledInt int
	err := s.db.QueryRowContext(ctx, q, loginID).Scan(
		&a.AccountID,
		&a.LoginID,
		&a.PasswordHash,
		&a.Role,
		&a.LMSUserID,
		&a.CourseID,
		&isDisabledInt,
		&a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if isDisabledInt != 0 {
		a.IsDisabled = true
	}
	return &a, nil
}

func (s *Store) Create(ctx context.Context, a *Account) error {
	const q = `
INSERT INTO accounts (login_id, password_hash, role, lms_user_id, course_id, is_disabled, created_at)
VALUES (?, ?, ?, ?, ?, 0, NOW(6))
`
	_, err := s.db.ExecContext(ctx, q, a.LoginID, a.PasswordHash, a.Role, a.LMSUserID, a.CourseID)
	return err
}

func (s *Store) Delete(ctx context.Context, loginID string) (int64, error) {
	const q = `DELETE FROM accounts WHERE login_id = ?`
	res, err := s.db.ExecContext(ctx, q, loginID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) UpdateLoginID(ctx context.Context, oldID, newID string) (int64, error) {
	const q = `UPDATE accounts SET login_id = ? WHERE login_id = ?`
	res, err := s.db.ExecContext(ctx, q, newID, oldID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

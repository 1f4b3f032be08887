package auth

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// LMS上のロール
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
)

// 秘密鍵。環境変数があればそちらを使う。
var jwtSecret = func() []byte {
	if v := os.Getenv("LMS_JWT_SECRET"); v != "" {
		return []byte(v)
	}
	return []byte("your-secret-key")
}()

func JWTSecret() []byte {
	return jwtSecret
}

type Service struct {
	store AccountStore
}

func NewService(db *sql.DB) *Service {
	return &Service{store: NewStore(db)}
}

type AuthService interface {
	Login(ctx context.Context, loginID, password string) (string, error)
	Register(ctx context.Context, req RegisterRequest) error
	Delete(ctx context.Context, loginID string) error
	ChangeLoginID(ctx context.Context, oldID, newID string) error
}

func (s *Service) Login(ctx context.Context, loginID, password string) (string, error) {
	acct, err := s.store.GetByLoginID(ctx, loginID)
	if err != nil {
		return "", err
	}
	if acct == nil {
		return "", errors.New("authentication failed")
	}
	if acct.IsDisabled {
		return "", errors.New("account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return "", errors.New("authentication failed")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":         acct.LoginID,
		"role":        acct.Role,
		"account_id":  acct.AccountID,
		"lms_user_id": acct.LMSUserID,
		"course_id":   acct.CourseID,
		"exp":         time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	exists, err := s.store.GetByLoginID(ctx, req.LoginID)
	if err != nil {
		return err
	}
	if exists != nil {
		return ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	role := RoleStudent
	if req.Role != nil && *req.Role != "" {
		role = *req.Role
	}

	return s.store.Create(ctx, &Account{
		LoginID:      req.LoginID,
		PasswordHash: string(hash),
		Role:         role,
		LMSUserID:    req.LMSUserID,
		CourseID:     req.CourseID,
		IsDisabled:   false,
	})
}

func (s *Service) Delete(ctx context.Context, loginID string) error {
	n, err := s.store.Delete(ctx, loginID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ChangeLoginID(ctx context.Context, oldID, newID string) error {
	old, err := s.store.GetByLoginID(ctx, oldID)
	if err != nil {
		return err
	}
	if old == nil {
		return ErrNotFound
	}

	nw, err := s.store.GetByLoginID(ctx, newID)
	if err != nil {
		return err
	}
	if nw != nil {
		return ErrAlreadyExists
	}

	updated, err := s.store.UpdateLoginID(ctx, oldID, newID)
	if err != nil {
		return err
	}
	if updated == 0 {
		return ErrNotFound
	}
	return nil
}

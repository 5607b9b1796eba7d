package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"

	"max.ks1230/expense-tracker/internal/entity/user"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

type credentialStorage interface {
	UserByName(ctx context.Context, name string) (user.Record, bool, error)
	SaveUser(ctx context.Context, rec user.Record) error
}

type Service struct {
	storage credentialStorage
}

func NewService(storage credentialStorage) *Service {
	return &Service{storage: storage}
}

// HashPassword returns the unsalted hex digest the credential file
// stores. Two identical passwords hash identically; existing files
// depend on that, so don't salt this.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (s *Service) Register(ctx context.Context, name, password string) error {
	_, found, err := s.storage.UserByName(ctx, name)
	if err != nil {
		return errors.Wrap(err, "register")
	}
	if found {
		return customerr.ErrDuplicateUser
	}
	rec := user.Record{Name: name, PasswordHash: HashPassword(password)}
	return errors.Wrap(s.storage.SaveUser(ctx, rec), "register")
}

func (s *Service) Authenticate(ctx context.Context, name, password string) error {
	rec, found, err := s.storage.UserByName(ctx, name)
	if err != nil {
		return errors.Wrap(err, "authenticate")
	}
	if !found || rec.PasswordHash != HashPassword(password) {
		return customerr.ErrInvalidCredentials
	}
	return nil
}

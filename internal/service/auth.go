package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials means the NT ID was empty or the admin password did
// not match.
var ErrBadCredentials = errors.New("invalid credentials")

// AuthService validates logins. Any non-empty NT ID may log in as a
// plain user; the admin role additionally requires the configured
// password.
type AuthService struct {
	adminHash []byte
}

// NewAuthService constructs an AuthService guarding the admin role with
// the given password.
func NewAuthService(adminPassword string) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &AuthService{adminHash: hash}, nil
}

// Login authenticates an actor. NT IDs are trimmed and uppercased, so
// "jdoe" and "JDOE" are the same actor. When wantAdmin is set the
// password must match the configured admin password.
func (s *AuthService) Login(ctx context.Context, ntID, password string, wantAdmin bool) (models.Identity, error) {
	ntID = strings.ToUpper(strings.TrimSpace(ntID))
	if ntID == "" {
		return models.Identity{}, ErrBadCredentials
	}

	role := models.RoleUser
	if wantAdmin {
		if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)); err != nil {
			return models.Identity{}, ErrBadCredentials
		}
		role = models.RoleAdmin
	}

	return models.Identity{NTID: ntID, Role: role}, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/worktrail/backend/internal/model"
	"github.com/worktrail/backend/internal/policy"
	jwtpkg "github.com/worktrail/backend/pkg/jwt"
)

type AuthService struct {
	db        *gorm.DB
	blacklist *TokenBlacklist
	jwtSecret string
	jwtExpire int
}

func NewAuthService(db *gorm.DB, blacklist *TokenBlacklist, jwtSecret string, jwtExpire int) *AuthService {
	return &AuthService{
		db:        db,
		blacklist: blacklist,
		jwtSecret: jwtSecret,
		jwtExpire: jwtExpire,
	}
}

// Register creates a user and returns a fresh token. The role is fixed
// at registration; no endpoint changes it afterwards.
func (s *AuthService) Register(email, name, password string, role model.Role) (*model.User, string, time.Time, error) {
	if role == "" {
		role = model.RoleUser
	}

	var count int64
	s.db.Model(&model.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, "", time.Time{}, fmt.Errorf("40002:email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, "", time.Time{}, err
	}

	token, expireAt, err := jwtpkg.GenerateToken(s.jwtSecret, user.ID, string(user.Role), s.jwtExpire)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expireAt, nil
}

func (s *AuthService) Login(email, password string) (*model.User, string, time.Time, error) {
	var user model.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", time.Time{}, fmt.Errorf("40101:invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, fmt.Errorf("40101:invalid credentials")
	}

	token, expireAt, err := jwtpkg.GenerateToken(s.jwtSecret, user.ID, string(user.Role), s.jwtExpire)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return &user, token, expireAt, nil
}

// Logout blacklists the presented token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiry time.Time) error {
	return s.blacklist.Revoke(ctx, tokenID, time.Until(expiry))
}

// ListUsers returns every account; admins and managers only.
func (s *AuthService) ListUsers(actor *model.User) ([]model.User, error) {
	if err := policy.CanListUsers(actor.Role); err != nil {
		return nil, err
	}
	var users []model.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// EnsureAdmin seeds a bootstrap admin account when none exists, so a
// fresh deployment has a way in. No-op if any admin is present or the
// bootstrap config is empty.
func (s *AuthService) EnsureAdmin(email, name, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if name == "" {
		name = "Administrator"
	}
	admin := &model.User{
		Email:        email,
		Name:         name,
		Role:         model.RoleAdmin,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}
	log.Printf("created bootstrap admin user: %s", email)
	return nil
}

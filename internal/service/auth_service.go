package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/db"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials 在用户名或密码错误时返回
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService 负责站点所有者账号
type AuthService struct {
	store store.Store
}

// NewAuthService 构造 AuthService
func NewAuthService(s store.Store) *AuthService {
	return &AuthService{store: s}
}

// EnsureOwner 在账号不存在时使用给定密码创建所有者账号
func (s *AuthService) EnsureOwner(ctx context.Context, username, password string) (*db.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.New("owner username and password are required")
	}

	existing, err := s.store.GetUserByUsername(ctx, username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash owner password: %w", err)
	}

	user := db.User{Username: username, Password: string(hashed)}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		return nil, err
	}
	log.Printf("[auth] created owner account %s", username)
	return &user, nil
}

// Authenticate 校验用户名密码
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*db.User, error) {
	user, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

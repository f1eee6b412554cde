package service

import (
	"context"
	"errors"
	"strings"

	"github.com/focusboard/internal/auth"
	"github.com/focusboard/internal/db"
	"gorm.io/gorm"
)

// AuthService 处理注册与登录
type AuthService struct {
	db     *gorm.DB
	tokens *auth.Manager
}

// AuthResult 是注册/登录成功后的返回值
type AuthResult struct {
	User  db.User
	Token string
}

// NewAuthService 构造 AuthService
func NewAuthService(gdb *gorm.DB, tokens *auth.Manager) *AuthService {
	return &AuthService{db: gdb, tokens: tokens}
}

// WithContext 返回绑定请求上下文的副本
func (s *AuthService) WithContext(ctx context.Context) *AuthService {
	return &AuthService{db: s.db.WithContext(ctx), tokens: s.tokens}
}

// Register 创建用户并签发令牌，邮箱已存在时返回 ErrUserExists
func (s *AuthService) Register(email, password, name string) (*AuthResult, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, invalidInput("Email, password, and name are required")
	}

	var count int64
	if err := s.db.Model(&db.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, storeError("check user", err)
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hash, err := s.tokens.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := db.User{Email: email, Name: name, Password: hash}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, storeError("create user", err)
	}

	return s.issue(user)
}

// Login 校验邮箱与密码
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalidInput("Email and password are required")
	}

	var user db.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storeError("find user", err)
	}

	if err := s.tokens.ComparePassword(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) issue(user db.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

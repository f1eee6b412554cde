package auth

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidToken 在令牌无法解析或已失效时返回
var ErrInvalidToken = errors.New("invalid token")

// userIDContextKey 是 gin.Context 中保存当前用户 ID 的键
const userIDContextKey = "__user_id"

// Claims 同时写入 id 与 userId，兼容旧版客户端
type Claims struct {
	LegacyID string `json:"id"`
	UserID   string `json:"userId"`
	jwt.RegisteredClaims
}

// Manager 负责密码哈希与 JWT 签发/校验
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager 构造 Manager，ttl<=0 时默认 7 天
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// HashPassword 生成 bcrypt 哈希
func (m *Manager) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword 校验明文密码
func (m *Manager) ComparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GenerateToken 为用户签发 HS256 令牌
func (m *Manager) GenerateToken(userID uint) (string, error) {
	if userID == 0 {
		return "", errors.New("user id is required to generate a token")
	}
	subject := strconv.FormatUint(uint64(userID), 10)
	now := m.now()
	claims := Claims{
		LegacyID: subject,
		UserID:   subject,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken 校验令牌并返回用户 ID
func (m *Manager) ParseToken(tokenString string) (uint, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return 0, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return 0, ErrInvalidToken
	}

	raw := claims.UserID
	if raw == "" {
		raw = claims.LegacyID
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// TokenFromRequest 从 Authorization: Bearer 头中取出令牌
func TokenFromRequest(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// Required 要求请求携带有效令牌，并把用户 ID 写入上下文
func (m *Manager) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := TokenFromRequest(c.Request)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized, no token"})
			return
		}
		userID, err := m.ParseToken(token)
		if err != nil {
			message := "Not authorized, token failed"
			if errors.Is(err, jwt.ErrTokenExpired) {
				message = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
			return
		}
		c.Set(userIDContextKey, userID)
		c.Next()
	}
}

// UserID 读取中间件写入的用户 ID
func UserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(userIDContextKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok && id != 0
}

// SetUserID 供测试或其他中间件直接写入用户
func SetUserID(c *gin.Context, userID uint) {
	c.Set(userIDContextKey, userID)
}

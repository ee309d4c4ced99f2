package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"tradefair/internal/service"
)

// ==================== JWT 配置 ====================

// JWTConfig JWT 配置
// 令牌由外部身份服务签发，这里只做校验与解码
type JWTConfig struct {
	SecretKey string
	Issuer    string
	TokenTTL  time.Duration
}

// DefaultJWTConfig 默认配置
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		SecretKey: "tradefair-secret-key-change-in-production",
		Issuer:    "tradefair",
		TokenTTL:  2 * time.Hour,
	}
}

// 全局配置
var jwtConfig = DefaultJWTConfig()

// SetJWTConfig 设置 JWT 配置
func SetJWTConfig(cfg *JWTConfig) {
	jwtConfig = cfg
}

// ==================== Claims 定义 ====================

// IdentityClaims 身份声明
// ClerkUserID 为外部身份主体，Role 为身份服务下发的角色声明
type IdentityClaims struct {
	ClerkUserID string `json:"clerk_user_id"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken 签发令牌
// 生产环境中令牌由身份服务签发，这里主要供本地联调与测试使用
func GenerateToken(clerkUserID, role string) (string, error) {
	now := time.Now()
	claims := &IdentityClaims{
		ClerkUserID: clerkUserID,
		Role:        role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtConfig.Issuer,
			Subject:   "access",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtConfig.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtConfig.SecretKey))
}

// ParseToken 解析令牌
func ParseToken(tokenString string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(jwtConfig.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*IdentityClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyClerkUserID = "clerk_user_id"
	ContextKeyRole        = "role"
)

// Auth 认证中间件：无有效令牌直接 401
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseAuthHeader(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "未提供有效的认证信息",
			})
			c.Abort()
			return
		}

		c.Set(ContextKeyClerkUserID, claims.ClerkUserID)
		c.Set(ContextKeyRole, claims.Role)
		c.Next()
	}
}

// OptionalAuth 可选认证中间件（不强制登录）
// 供行为埋点等允许匿名的接口使用
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseAuthHeader(c); ok {
			c.Set(ContextKeyClerkUserID, claims.ClerkUserID)
			c.Set(ContextKeyRole, claims.Role)
		}
		c.Next()
	}
}

// RequireRole 角色声明快速拦截
// 角色的最终裁决在服务层按存量用户记录执行，这里只做前置过滤
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextKeyRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "无权限访问",
		})
		c.Abort()
	}
}

// ==================== 辅助函数 ====================

func parseAuthHeader(c *gin.Context) (*IdentityClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := ParseToken(parts[1])
	if err != nil || claims.Subject != "access" {
		return nil, false
	}
	return claims, true
}

// GetPrincipal 从 Context 提取认证主体
// 未认证请求返回 nil，由服务层统一处理
func GetPrincipal(c *gin.Context) *service.Principal {
	clerkID := c.GetString(ContextKeyClerkUserID)
	if clerkID == "" {
		return nil
	}
	return &service.Principal{
		ClerkUserID: clerkID,
		Role:        c.GetString(ContextKeyRole),
	}
}

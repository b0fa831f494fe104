package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie 会话 cookie 名
const SessionCookie = "oa_session"

// CookieConfig 会话 cookie 配置
type CookieConfig struct {
	// Secret HS256 签名密钥；cookie 值是签名后的令牌而非裸会话 ID
	Secret string
	// Secure 仅 HTTPS（生产环境开启）
	Secure bool
}

// sessionClaims cookie 载荷：Subject 为会话 ID，会话行本身才是权威数据
type sessionClaims struct {
	jwt.RegisteredClaims
}

// signSessionID 将会话 ID 签名为 cookie 值
// 令牌本身不带过期声明：会话行才是权威，过期判定与惰性清理都在读取会话行时发生
func signSessionID(cfg CookieConfig, sessionID string) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  sessionID,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// parseSessionID 验证 cookie 值并取出会话 ID
// 签名不合法或令牌过期均视为无会话
func parseSessionID(cfg CookieConfig, value string) (string, error) {
	token, err := jwt.ParseWithClaims(value, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return "", fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid session token")
	}
	return claims.Subject, nil
}

// SetSessionCookie 登录/注册成功后下发会话 cookie
func SetSessionCookie(w http.ResponseWriter, cfg CookieConfig, sessionID string, expiresAt time.Time) error {
	value, err := signSessionID(cfg, sessionID)
	if err != nil {
		return fmt.Errorf("sign session cookie: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.Secure,
	})
	return nil
}

// ClearSessionCookie 登出时清空 cookie（空值 + epoch 过期）
func ClearSessionCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.Secure,
	})
}

// sessionIDFromRequest 从请求 cookie 解析会话 ID，无 cookie 或验签失败返回空串
func sessionIDFromRequest(r *http.Request, cfg CookieConfig) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return ""
	}
	id, err := parseSessionID(cfg, c.Value)
	if err != nil {
		return ""
	}
	return id
}

// FILE: internal/pkg/session/session.go
package session

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Scope separates agency and admin sessions. Each scope signs with its own
// secret, so a token minted for one scope can never verify in the other
// even if the claims were forged to match.
const (
	ScopeAgency = "agency"
	ScopeAdmin  = "admin"
)

var ErrInvalidToken = errors.New("session: invalid token")

type Config struct {
	AgencySecret    string
	AdminSecret     string
	AgencyTTL       time.Duration
	AdminTTL        time.Duration
	CookieName      string
	AdminCookieName string
	CookieDomain    string
	CookieSameSite  string
	CookieSecure    bool
}

type Manager struct {
	cfg Config
}

func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg}
}

func (m *Manager) CookieName() string {
	return m.cfg.CookieName
}

func (m *Manager) AdminCookieName() string {
	return m.cfg.AdminCookieName
}

func (m *Manager) IssueAgencyToken(agencyId uuid.UUID) (string, error) {
	return m.sign(agencyId.String(), ScopeAgency, "", m.cfg.AgencySecret, m.cfg.AgencyTTL)
}

func (m *Manager) IssueAdminToken(adminId uuid.UUID, role string) (string, error) {
	return m.sign(adminId.String(), ScopeAdmin, role, m.cfg.AdminSecret, m.cfg.AdminTTL)
}

func (m *Manager) sign(sub, scope, role, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": sub,
		"typ": scope,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if role != "" {
		claims["role"] = role
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (m *Manager) VerifyAgencyToken(tokenString string) (uuid.UUID, error) {
	claims, err := m.verify(tokenString, ScopeAgency, m.cfg.AgencySecret)
	if err != nil {
		return uuid.Nil, err
	}
	return subjectId(claims)
}

func (m *Manager) VerifyAdminToken(tokenString string) (uuid.UUID, string, error) {
	claims, err := m.verify(tokenString, ScopeAdmin, m.cfg.AdminSecret)
	if err != nil {
		return uuid.Nil, "", err
	}
	id, err := subjectId(claims)
	if err != nil {
		return uuid.Nil, "", err
	}
	role, _ := claims["role"].(string)
	return id, role, nil
}

func (m *Manager) verify(tokenString, scope, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != scope {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func subjectId(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

// Cookie helpers. Max-Age drives expiry; Expires is set as well for clients
// that ignore Max-Age.

func (m *Manager) AgencyCookie(token string) *fiber.Cookie {
	return m.cookie(m.cfg.CookieName, token, m.cfg.AgencyTTL)
}

func (m *Manager) AdminCookie(token string) *fiber.Cookie {
	return m.cookie(m.cfg.AdminCookieName, token, m.cfg.AdminTTL)
}

func (m *Manager) ClearAgencyCookie() *fiber.Cookie {
	return m.cookie(m.cfg.CookieName, "", -time.Hour)
}

func (m *Manager) ClearAdminCookie() *fiber.Cookie {
	return m.cookie(m.cfg.AdminCookieName, "", -time.Hour)
}

func (m *Manager) cookie(name, value string, ttl time.Duration) *fiber.Cookie {
	c := &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   m.cfg.CookieDomain,
		HTTPOnly: true,
		Secure:   m.cfg.CookieSecure,
		SameSite: sameSiteValue(m.cfg.CookieSameSite),
		Expires:  time.Now().Add(ttl),
	}
	if ttl > 0 {
		c.MaxAge = int(ttl.Seconds())
	} else {
		c.MaxAge = -1
	}
	return c
}

func sameSiteValue(raw string) string {
	switch raw {
	case "strict":
		return fiber.CookieSameSiteStrictMode
	case "none":
		return fiber.CookieSameSiteNoneMode
	default:
		return fiber.CookieSameSiteLaxMode
	}
}

// TokenFromRequest pulls the session token from the Authorization header
// first, then the named cookie.
func TokenFromRequest(c *fiber.Ctx, cookieName string) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) > 7 && auth[:7] == "Bearer " {
		return auth[7:]
	}
	return c.Cookies(cookieName)
}

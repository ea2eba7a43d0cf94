// Package session issues and checks HS256 session tokens carried either in
// an Authorization bearer header or in a session cookie.
package session

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"dqx0.com/go/httpmsg/httpx"
)

var (
	ErrNoCredentials = errors.New("session: no credentials")
	ErrInvalidToken  = errors.New("session: invalid token")
)

const DefaultCookieName = "httpx_session"

type Claims struct {
	Subject string `json:"sub"`
	jwt.RegisteredClaims
}

// Manager signs tokens with Secret. A zero TTL issues tokens that never
// expire.
type Manager struct {
	Secret     []byte
	CookieName string
	TTL        time.Duration
	Path       string
	Domain     string
	Secure     bool

	// Now overrides time.Now in tests.
	Now func() time.Time
}

func (m *Manager) cookieName() string {
	if m.CookieName == "" {
		return DefaultCookieName
	}
	return m.CookieName
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Sign returns a signed token for subject.
func (m *Manager) Sign(subject string) (string, error) {
	if len(m.Secret) == 0 {
		return "", errors.New("session: empty secret")
	}
	now := m.now()
	claims := Claims{Subject: subject}
	claims.IssuedAt = jwt.NewNumericDate(now)
	if m.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.TTL))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
}

// Issue signs a token for subject and sets it as the session cookie on resp.
func (m *Manager) Issue(resp *httpx.Response, subject string) (string, error) {
	tok, err := m.Sign(subject)
	if err != nil {
		return "", err
	}
	c := httpx.Cookie{
		Name:     m.cookieName(),
		Value:    tok,
		Path:     m.Path,
		Domain:   m.Domain,
		Secure:   m.Secure,
		HttpOnly: true,
		SameSite: httpx.SameSiteLax,
	}
	if m.TTL > 0 {
		c.Expires = m.now().Add(m.TTL)
	}
	resp.SetCookie(c)
	return tok, nil
}

// Verify parses tok and returns its subject.
func (m *Manager) Verify(tok string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Authenticate returns the subject of req's session. The bearer token wins
// when present; otherwise the session cookie is used.
func (m *Manager) Authenticate(req *httpx.Request) (string, error) {
	if auth, ok := req.HasHeader("Authorization"); ok {
		if len(auth) > 7 && httpx.EqualFold(auth[:7], "Bearer ") {
			return m.Verify(strings.TrimSpace(auth[7:]))
		}
	}
	if tok, ok := req.HasCookie(m.cookieName()); ok && tok != "" {
		return m.Verify(tok)
	}
	return "", ErrNoCredentials
}

// Clear expires the session cookie on resp.
func (m *Manager) Clear(resp *httpx.Response) {
	resp.SetCookie(httpx.Cookie{
		Name:     m.cookieName(),
		Path:     m.Path,
		Domain:   m.Domain,
		Secure:   m.Secure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
}

package web

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// AuthCookie holds the bearer token of the browser session.
const AuthCookie = "authToken"

// cookieStore exposes one request's auth cookie as an api.CredentialStore.
// The jobs and facets fetches of a page share it from two goroutines.
type cookieStore struct {
	c *gin.Context

	mu      sync.Mutex
	cleared bool
}

func newCookieStore(c *gin.Context) *cookieStore {
	return &cookieStore{c: c}
}

func (s *cookieStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cleared {
		return ""
	}
	token, err := s.c.Cookie(AuthCookie)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(token)
}

// Clear expires the cookie. Only the first call writes a Set-Cookie header.
func (s *cookieStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cleared {
		return nil
	}
	s.cleared = true
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(AuthCookie, "", -1, "/", "", false, true)
	return nil
}

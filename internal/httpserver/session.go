// internal/httpserver/session.go
//
// Anonymous player sessions. There are no accounts: each browser gets a
// stable player ID carried in an HttpOnly cookie holding a signed JWT. The
// ID keys every persisted blob (stats, daily snapshot), so losing the cookie
// means losing the streak — same trade-off as localStorage in the web client.

package httpserver

import (
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const sessionCookieName = "letterdrop_session"

// sessionTTL is deliberately long; the cookie is the player's identity.
const sessionTTL = 365 * 24 * time.Hour

// ensurePlayerID returns the player ID from a valid session cookie, or mints
// a new identity and sets the cookie. Invalid or expired tokens are replaced
// silently.
func (s *Server) ensurePlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		if id, ok := s.parseSession(c.Value); ok {
			return id
		}
	}

	id := uuid.NewString()
	tok, err := s.signSession(id)
	if err != nil {
		log.Warn().Err(err).Msg("sign session token")
		return id
	}
	secure := os.Getenv("NODE_ENV") == "production"
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for cross-site contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  time.Now().Add(sessionTTL),
	})
	return id
}

// signSession creates an HS256 JWT whose subject is the player ID.
func (s *Server) signSession(playerID string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": playerID,
		"iat": now.Unix(),
		"exp": now.Add(sessionTTL).Unix(),
	})
	return t.SignedString([]byte(s.cfg.JWTSecret))
}

// parseSession validates the token and extracts the player ID.
func (s *Server) parseSession(token string) (string, bool) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !t.Valid {
		return "", false
	}
	sub, _ := claims["sub"].(string)
	return sub, sub != ""
}

// Package auth guards operator endpoints with a shared bearer token.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	HeaderAuthorization = "Authorization"
)

// ErrNoAdminToken is returned when the guard is built without a token.
var ErrNoAdminToken = errors.New("admin token is not configured")

// AdminGuard authorizes requests carrying the configured admin token,
// optionally only from an allow-list of client IPs.
type AdminGuard struct {
	tokenHash  string
	allowedIPs []string
	log        zerolog.Logger
}

// NewAdminGuard hashes token and canonicalizes allowedIPs.
func NewAdminGuard(token string, allowedIPs []string, log zerolog.Logger) (*AdminGuard, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNoAdminToken
	}
	canonicalIPs, err := CanonicalizeIPs(allowedIPs)
	if err != nil {
		return nil, err
	}
	return &AdminGuard{
		tokenHash:  hashToken(token),
		allowedIPs: canonicalIPs,
		log:        log.With().Str("component", "auth").Logger(),
	}, nil
}

// Require returns a middleware that rejects requests without the admin bearer token.
func (g *AdminGuard) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(HeaderAuthorization)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization header format",
			})
			return
		}

		if !tokenMatches(strings.TrimSpace(parts[1]), g.tokenHash) {
			g.log.Warn().Str("ip", c.ClientIP()).Msg("rejected admin request with invalid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid token",
			})
			return
		}

		if len(g.allowedIPs) > 0 {
			canonicalIP, err := CanonicalizeIP(c.ClientIP())
			if err != nil {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error": "invalid client IP",
				})
				return
			}
			if !IsIPAllowed(canonicalIP, g.allowedIPs) {
				g.log.Warn().Str("ip", c.ClientIP()).Msg("rejected admin request from disallowed IP")
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error": "IP address not allowed for this token",
				})
				return
			}
		}

		c.Next()
	}
}

package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/julianstephens/studylit/internal/logger"
)

const userIDCtxKey = "user_id"

// Authenticator validates bearer tokens issued by the external identity
// provider. The token subject is the user id; nothing else is checked.
type Authenticator struct {
	signingKey []byte
	issuer     string
}

func NewAuthenticator(secret, issuer string) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Authenticator{signingKey: []byte(secret), issuer: issuer}, nil
}

func (a *Authenticator) parse(tokenString string) (*jwt.RegisteredClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return a.signingKey, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// Issue signs a token for userID. Used by `serve --issue-token` for local
// clients and by tests.
func (a *Authenticator) Issue(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    a.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.signingKey)
}

// Middleware rejects requests without a valid bearer token and stores the
// user id in the gin context.
func (a *Authenticator) Middleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		abort(c, newUnauthorizedError("authorization header required"))
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		abort(c, newUnauthorizedError("invalid authorization header"))
		return
	}

	claims, err := a.parse(parts[1])
	if err != nil {
		logger.Debug("Rejected token", "error", err)
		abort(c, newUnauthorizedError("invalid token"))
		return
	}

	c.Set(userIDCtxKey, claims.Subject)
	c.Next()
}

func userID(c *gin.Context) string {
	return c.GetString(userIDCtxKey)
}

// Package session carries the signed-in user through requests and through
// long-lived client components.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const contextKey = "session"

var (
	ErrMissingToken = errors.New("authorization header is missing")
	ErrInvalidToken = errors.New("invalid token")
)

// Session is the identity behind a request. The zero value is anonymous.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

func (s Session) Authenticated() bool {
	return s.UserID != ""
}

type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// From returns the session stored on c by the middleware, or an anonymous
// session.
func From(c echo.Context) Session {
	if s, ok := c.Get(contextKey).(Session); ok {
		return s
	}
	return Session{}
}

// Set stores s on c for the rest of the request.
func Set(c echo.Context, s Session) {
	c.Set(contextKey, s)
}

// Verifier validates HS256 bearer tokens issued by the auth provider.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Parse validates token and returns the session it identifies. The subject
// claim must be a UUID.
func (v *Verifier) Parse(token string) (Session, error) {
	if token == "" {
		return Session{}, ErrMissingToken
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Session{}, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	return Session{UserID: id.String(), Email: claims.Email}, nil
}

// Sign issues a token for s. Used by tests and local tooling.
func (v *Verifier) Sign(s Session, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = s.UserID
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Email: s.Email, RegisteredClaims: claims})
	return token.SignedString(v.secret)
}

// Optional attaches the session when a valid bearer token is present.
// Requests without a token continue anonymously; a bad token is rejected.
func (v *Verifier) Optional() echo.MiddlewareFunc {
	return v.middleware(false)
}

// Required rejects requests without a valid bearer token.
func (v *Verifier) Required() echo.MiddlewareFunc {
	return v.middleware(true)
}

func (v *Verifier) middleware(required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if errors.Is(err, ErrMissingToken) && !required {
				return next(c)
			}
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "sign in required")
			}

			s, err := v.Parse(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			Set(c, s)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("authorization header format must be 'Bearer {token}'")
	}
	return strings.TrimSpace(parts[1]), nil
}

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
)

// ErrNoToken the request carries no viewer token
var ErrNoToken = errors.New("no token presented")

// AppTokenClaims claims issued by the sign-in service
type AppTokenClaims struct {
	UID  string `json:"uid"`
	Name string `json:"name"`

	jwt.StandardClaims
}

// TimeRemaining remaining time before the token get expired
func (tk *AppTokenClaims) TimeRemaining() time.Duration {
	exp := time.Unix(tk.ExpiresAt, 0)
	now := time.Now()

	if exp.Before(now) {
		return 0
	}
	return exp.Sub(now)
}

// JWTUtil .
type JWTUtil struct {
	secret    []byte
	tokenName string
	method    jwt.SigningMethod
}

// NewJWTUtil create a JWTUtil instance
func NewJWTUtil(method, secret, tokenName string) *JWTUtil {
	var signMethod jwt.SigningMethod
	switch method {
	case "HS512":
		signMethod = jwt.SigningMethodHS512
	default:
		signMethod = jwt.SigningMethodHS256
	}
	return &JWTUtil{
		method:    signMethod,
		secret:    []byte(secret),
		tokenName: tokenName,
	}
}

// TokenName cookie carrying the token
func (ju *JWTUtil) TokenName() string {
	return ju.tokenName
}

// Sign sign token
func (ju *JWTUtil) Sign(claims *AppTokenClaims) (string, error) {
	token := jwt.NewWithClaims(ju.method, claims)
	return token.SignedString(ju.secret)
}

// Validate validate token string with secret and return AppTokenClaims
func (ju *JWTUtil) Validate(tokenStr string) (*AppTokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AppTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != ju.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return ju.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AppTokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ExtractToken get token string from request, the cookie wins over the
// Authorization header
func (ju *JWTUtil) ExtractToken(c echo.Context) (string, error) {
	if cookie, err := c.Cookie(ju.tokenName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	if token := BearerToken(c.Request().Header.Get(echo.HeaderAuthorization)); token != "" {
		return token, nil
	}
	return "", ErrNoToken
}

// BearerToken token part of a "Bearer <token>" header value
func BearerToken(header string) string {
	const scheme = "bearer "
	if len(header) <= len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return ""
	}
	return strings.TrimSpace(header[len(scheme):])
}

// SetBearer attach token to an outgoing request
func SetBearer(req *http.Request, token string) {
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
}

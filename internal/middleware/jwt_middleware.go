package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	// AdminCookie carries the admin token between page loads.
	AdminCookie = "admin_token"
	AdminRole   = "admin"
	LoginPath   = "/admin/login"

	claimsKey = "admin_claims"
)

// Claims defines JWT payload structure
type Claims struct {
	AdminID  int64  `json:"admin_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed admin token that expires after the given hours.
func GenerateToken(secret []byte, adminID int64, username string, hours int) (string, error) {
	now := time.Now()
	claims := &Claims{
		AdminID:  adminID,
		Username: username,
		Role:     AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(hours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "agro-shop",
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// AdminGate lets a request through only with a valid admin token, taken from
// the admin_token cookie or an "Authorization: Bearer" header. Everyone else
// is sent to the login page.
func AdminGate(secret []byte) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		SigningKey:    secret,
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		TokenLookup:   "cookie:" + AdminCookie + ",header:Authorization:Bearer ",
		ContextKey:    claimsKey,
		NewClaimsFunc: func(echo.Context) jwt.Claims { return new(Claims) },
		ErrorHandler: func(c echo.Context, err error) error {
			return c.Redirect(http.StatusSeeOther, LoginPath)
		},
	})
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(AdminOnly(next))
	}
}

// AdminOnly middleware requires role == admin
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := GetClaims(c)
		if claims == nil || claims.Role != AdminRole {
			return c.Redirect(http.StatusSeeOther, LoginPath)
		}
		return next(c)
	}
}

// Helper to extract claims
func GetClaims(c echo.Context) *Claims {
	tok, ok := c.Get(claimsKey).(*jwt.Token)
	if !ok || tok == nil {
		return nil
	}
	if cl, ok := tok.Claims.(*Claims); ok {
		return cl
	}
	return nil
}

// SetAdminCookie stores the token as an HttpOnly cookie.
func SetAdminCookie(c echo.Context, token string, hours int) {
	c.SetCookie(&http.Cookie{
		Name:     AdminCookie,
		Value:    token,
		Path:     "/admin",
		MaxAge:   hours * 3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearAdminCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     AdminCookie,
		Value:    "",
		Path:     "/admin",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

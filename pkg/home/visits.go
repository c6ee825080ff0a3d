package home

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// VisitsCookieName holds the signed visit counter for the browser session.
const VisitsCookieName = "catalog_visits"

type visitClaims struct {
	Visits int `json:"visits"`
	jwt.RegisteredClaims
}

// visitCounter reads and writes the per-session visit count. The count lives
// in a session cookie signed with HS256, so a tampered value reads as zero.
type visitCounter struct {
	secret []byte
}

func (v *visitCounter) read(c echo.Context) int {
	cookie, err := c.Cookie(VisitsCookieName)
	if err != nil || cookie.Value == "" {
		return 0
	}

	token, err := jwt.ParseWithClaims(cookie.Value, &visitClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return 0
	}

	claims, ok := token.Claims.(*visitClaims)
	if !ok || claims.Visits < 0 {
		return 0
	}
	return claims.Visits
}

func (v *visitCounter) write(c echo.Context, visits int) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, visitClaims{Visits: visits})
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     VisitsCookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type sessionClaims struct {
	jwt.RegisteredClaims
}

// Login checks the configured password and sets the session cookie. When
// no password is configured the whole API is open and login degenerates to
// a no-op success.
func (handler *Handler) Login(c *fiber.Ctx) error {
	if len(handler.passwordHash) == 0 {
		return c.JSON(fiber.Map{"status": "ok"})
	}

	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if bcrypt.CompareHashAndPassword(handler.passwordHash, []byte(input.Password)) != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid password")
	}

	token, err := handler.issueSessionToken(time.Now())
	if err != nil {
		handler.logger.Error().Err(err).Msg("issue session token failed")
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}

	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Expires:  time.Now().Add(authTokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.JSON(fiber.Map{"status": "ok"})
}

// RequireAuth guards the API routes. It is a pass-through when no
// password is configured.
func (handler *Handler) RequireAuth(c *fiber.Ctx) error {
	if len(handler.passwordHash) == 0 {
		return c.Next()
	}

	cookie := c.Cookies(authCookieName)
	if cookie == "" {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	claims := sessionClaims{}
	token, err := jwt.ParseWithClaims(cookie, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	return c.Next()
}

func (handler *Handler) issueSessionToken(now time.Time) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "somnia",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(authTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

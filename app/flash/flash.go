package flash

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// One-shot notices carried across a redirect in a signed, short-lived
// cookie instead of server-side session state.

const cookieName = "flash"

var secretKey []byte

// Init sets the signing secret. Must be called before any Set/Pop.
func Init(secret string) {
	secretKey = []byte(secret)
}

type Message struct {
	Kind string
	Text string
}

type flashClaims struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
	jwt.RegisteredClaims
}

// Success queues a success notice for the next rendered page.
func Success(c *fiber.Ctx, text string) {
	Set(c, "success", text)
}

func Set(c *fiber.Ctx, kind, text string) {
	claims := flashClaims{
		Kind: kind,
		Text: text,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(5 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
	if err != nil {
		return
	}

	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    token,
		Expires:  time.Now().Add(5 * time.Minute),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// Pop returns the queued notice and clears it, or nil when there is none
// or the cookie does not verify.
func Pop(c *fiber.Ctx) *Message {
	tokenString := c.Cookies(cookieName)
	if tokenString == "" {
		return nil
	}

	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	token, err := jwt.ParseWithClaims(tokenString, &flashClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(*flashClaims)
	if !ok {
		return nil
	}
	return &Message{Kind: claims.Kind, Text: claims.Text}
}

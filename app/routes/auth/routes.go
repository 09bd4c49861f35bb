package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const sessionCookie = "sav_session"

func SetupAuthRoutes(app *fiber.App) {
	app.Get("/login", ShowLoginPage)
	app.Post("/login", LoginHandler)
	app.Post("/logout", LogoutHandler)
}

func ShowLoginPage(c *fiber.Ctx) error {
	if !Enabled() {
		return c.Redirect("/")
	}

	// Check if already logged in
	if tokenString := c.Cookies(sessionCookie); tokenString != "" {
		if err := ValidateSession(tokenString); err == nil {
			return c.Redirect("/")
		}
	}

	return c.Render("login", fiber.Map{
		"Title": "Login",
	})
}

func LoginHandler(c *fiber.Ctx) error {
	if !Enabled() {
		return c.Redirect("/")
	}

	if !CheckPassword(c.FormValue("password")) {
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
			"Title": "Login",
			"Error": "Invalid password",
		})
	}

	token, err := GenerateSession()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create session")
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect("/")
}

func LogoutHandler(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.Redirect("/login")
}

// Middleware redirects to the login page when the gate is enabled and the
// request carries no valid session.
func Middleware(c *fiber.Ctx) error {
	if !Enabled() {
		return c.Next()
	}

	tokenString := c.Cookies(sessionCookie)
	if tokenString == "" {
		return c.Redirect("/login")
	}

	if err := ValidateSession(tokenString); err != nil {
		return c.Redirect("/login")
	}

	return c.Next()
}

package handlers

import (
	"conference-api/errors"
	"conference-api/model"
	"conference-api/service"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func (h *Handler) Login(c *fiber.Ctx) error {
	var creds = new(model.Credentials)

	if err := c.BodyParser(creds); err != nil {
		return errors.RaiseBadRequestError(c, "Error on login request when parse credentials")
	}

	account, err := h.svc.Authenticate(c.UserContext(), *creds)
	if err != nil {
		return h.fail(c, err)
	}

	t, err := h.issueToken(service.UserFromAccount(*account))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Success login", "data": t})
}

func (h *Handler) Signup(c *fiber.Ctx) error {
	var form = new(model.SignupForm)

	if err := c.BodyParser(form); err != nil {
		return errors.RaiseBadRequestError(c, "Error on signup request when parse user data")
	}

	profile, err := h.svc.Signup(c.UserContext(), *form)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "message": "User created", "data": profile})
}

func (h *Handler) issueToken(user service.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["sub"] = user.ID
	claims["username"] = user.ID
	claims["email"] = user.Email
	claims["name"] = user.Name
	claims["exp"] = time.Now().Add(h.tokenTTL).Unix()

	return token.SignedString(h.signingKey)
}

package handlers

import (
	"conference-api/errors"
	"conference-api/service"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type Handler struct {
	svc        *service.Service
	signingKey []byte
	tokenTTL   time.Duration
	logger     *slog.Logger
}

func New(svc *service.Service, signingKey []byte, tokenTTL time.Duration, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, signingKey: signingKey, tokenTTL: tokenTTL, logger: logger}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	if err := h.svc.Ping(c.UserContext()); err != nil {
		return errors.RaiseError(c, fiber.StatusServiceUnavailable, "service unavailable", fmt.Sprint(err))
	}
	return c.JSON(fiber.Map{"status": "success", "message": "ok", "data": nil})
}

// fail reports err to the client, logging anything that is not the
// caller's fault.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if errors.KindOf(err) == errors.KindInternal {
		h.logger.ErrorContext(c.UserContext(), "request failed",
			"method", c.Method(), "path", c.Path(), "request_id", c.Locals("requestid"), "error", err)
	}
	return errors.Raise(c, err)
}

func parseBody(c *fiber.Ctx, out any, what string) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return errors.BadRequest("unacceptable %s parameters: %v", what, err)
	}
	return nil
}

// currentUser reads the caller from the token verified by
// middleware.Authorize. It is the zero User when there is none.
func currentUser(c *fiber.Ctx) service.User {
	token, ok := c.Locals("identity").(*jwt.Token)
	if !ok || token == nil {
		return service.User{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return service.User{}
	}

	user := service.User{}
	user.ID, _ = claims["sub"].(string)
	user.Email, _ = claims["email"].(string)
	user.Name, _ = claims["name"].(string)
	return user
}

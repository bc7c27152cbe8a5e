package handlers

import (
	"conference-api/model"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateSession(c *fiber.Ctx) error {
	form := new(model.SessionForm)
	if err := parseBody(c, form, "session"); err != nil {
		return h.fail(c, err)
	}

	sess, err := h.svc.CreateSession(c.UserContext(), currentUser(c), c.Params("confKey"), *form)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sess)
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	sess, err := h.svc.GetSession(c.UserContext(), c.Params("sessionKey"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sess)
}

func (h *Handler) ConferenceSessions(c *fiber.Ctx) error {
	sessions, err := h.svc.ConferenceSessions(c.UserContext(), c.Params("confKey"), c.Params("type"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sessions)
}

func (h *Handler) SessionsBySpeaker(c *fiber.Ctx) error {
	sessions, err := h.svc.SessionsBySpeaker(c.UserContext(), c.Params("speakerKey"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sessions)
}

func (h *Handler) FilterSessions(c *fiber.Ctx) error {
	sessions, err := h.svc.SessionsExcludingTypeBefore(c.UserContext(), c.Query("exclude_type"), c.Query("before"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sessions)
}

func (h *Handler) AddToWishlist(c *fiber.Ctx) error {
	msg, err := h.svc.AddSessionToWishlist(c.UserContext(), currentUser(c), c.Params("sessionKey"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(msg)
}

func (h *Handler) DeleteFromWishlist(c *fiber.Ctx) error {
	msg, err := h.svc.DeleteSessionFromWishlist(c.UserContext(), currentUser(c), c.Params("sessionKey"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(msg)
}

func (h *Handler) Wishlist(c *fiber.Ctx) error {
	sessions, err := h.svc.SessionsInWishlist(c.UserContext(), currentUser(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sessions)
}

package handlers

import (
	"conference-api/model"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateConference(c *fiber.Ctx) error {
	form := new(model.ConferenceForm)
	if err := parseBody(c, form, "conference"); err != nil {
		return h.fail(c, err)
	}

	conf, err := h.svc.CreateConference(c.UserContext(), currentUser(c), *form)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(conf)
}

func (h *Handler) UpdateConference(c *fiber.Ctx) error {
	form := new(model.ConferenceForm)
	if err := parseBody(c, form, "conference"); err != nil {
		return h.fail(c, err)
	}

	conf, err := h.svc.UpdateConference(c.UserContext(), currentUser(c), c.Params("confKey"), *form)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(conf)
}

func (h *Handler) GetConference(c *fiber.Ctx) error {
	conf, err := h.svc.GetConference(c.UserContext(), c.Params("confKey"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(conf)
}

func (h *Handler) QueryConferences(c *fiber.Ctx) error {
	forms := new(model.ConferenceQueryForms)
	if err := parseBody(c, forms, "query"); err != nil {
		return h.fail(c, err)
	}

	confs, err := h.svc.QueryConferences(c.UserContext(), *forms)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(confs)
}

func (h *Handler) ConferencesCreated(c *fiber.Ctx) error {
	confs, err := h.svc.ConferencesCreated(c.UserContext(), currentUser(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(confs)
}

func (h *Handler) ConferencesToAttend(c *fiber.Ctx) error {
	confs, err := h.svc.ConferencesToAttend(c.UserContext(), currentUser(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(confs)
}

func (h *Handler) RegisterForConference(c *fiber.Ctx) error {
	msg, err := h.svc.RegisterForConference(c.UserContext(), currentUser(c), c.Params("confKey"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(msg)
}

func (h *Handler) UnregisterFromConference(c *fiber.Ctx) error {
	msg, err := h.svc.UnregisterFromConference(c.UserContext(), currentUser(c), c.Params("confKey"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(msg)
}

func (h *Handler) GetAnnouncement(c *fiber.Ctx) error {
	msg, err := h.svc.Announcement(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(msg)
}

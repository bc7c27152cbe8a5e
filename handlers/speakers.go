package handlers

import (
	"conference-api/model"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) AddSpeaker(c *fiber.Ctx) error {
	form := new(model.SpeakerForm)
	if err := parseBody(c, form, "speaker"); err != nil {
		return h.fail(c, err)
	}

	speaker, err := h.svc.AddSpeaker(c.UserContext(), currentUser(c), *form)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(speaker)
}

func (h *Handler) Speakers(c *fiber.Ctx) error {
	speakers, err := h.svc.Speakers(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(speakers)
}

func (h *Handler) ConferenceSpeakers(c *fiber.Ctx) error {
	speakers, err := h.svc.SpeakersByConference(c.UserContext(), c.Params("confKey"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(speakers)
}

func (h *Handler) GetFeaturedSpeaker(c *fiber.Ctx) error {
	msg, err := h.svc.FeaturedSpeaker(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(msg)
}

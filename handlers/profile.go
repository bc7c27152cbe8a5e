package handlers

import (
	"conference-api/model"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	prof, err := h.svc.GetProfile(c.UserContext(), currentUser(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(prof)
}

func (h *Handler) SaveProfile(c *fiber.Ctx) error {
	form := new(model.ProfileMiniForm)
	if err := parseBody(c, form, "profile"); err != nil {
		return h.fail(c, err)
	}

	prof, err := h.svc.SaveProfile(c.UserContext(), currentUser(c), *form)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(prof)
}

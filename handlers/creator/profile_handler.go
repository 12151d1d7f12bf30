package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tarweej.app/models"
	"tarweej.app/pkg/httpresp"
	"tarweej.app/services"
)

// ProfileHandler covers the influencer's own profile surface.
type ProfileHandler struct {
	influencers services.IInfluencerService
}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{influencers: services.NewInfluencerService()}
}

func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *ProfileHandler) CreateProfile(c *fiber.Ctx) error {
	var profile models.InfluencerProfile
	if err := c.BodyParser(&profile); err != nil {
		return httpresp.BadRequest(c, "invalid request body")
	}
	created, err := h.influencers.CreateProfile(c.UserContext(), currentUserID(c), profile)
	if err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.Created(c, created)
}

func (h *ProfileHandler) GetMyProfile(c *fiber.Ctx) error {
	profile, err := h.influencers.GetProfileByUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.OK(c, profile)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var updates models.InfluencerProfile
	if err := c.BodyParser(&updates); err != nil {
		return httpresp.BadRequest(c, "invalid request body")
	}
	if err := h.influencers.UpdateProfile(c.UserContext(), currentUserID(c), updates); err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.OK(c, fiber.Map{"updated": true})
}

type bankDetailsRequest struct {
	BankName string `json:"bank_name"`
	IBAN     string `json:"iban"`
}

func (h *ProfileHandler) UpdateBankDetails(c *fiber.Ctx) error {
	var req bankDetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return httpresp.BadRequest(c, "invalid request body")
	}
	if err := h.influencers.UpdateBankDetails(c.UserContext(), currentUserID(c), req.BankName, req.IBAN); err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.OK(c, fiber.Map{"updated": true})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tarweej.app/models"
	"tarweej.app/pkg/httpresp"
	"tarweej.app/pkg/queryparams"
	"tarweej.app/services"
)

// CampaignHandler covers the owner's campaign CRUD surface.
type CampaignHandler struct {
	campaigns services.ICampaignService
}

func NewCampaignHandler() *CampaignHandler {
	return &CampaignHandler{campaigns: services.NewCampaignService()}
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

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var campaign models.Campaign
	if err := c.BodyParser(&campaign); err != nil {
		return httpresp.BadRequest(c, "invalid request body")
	}
	created, err := h.campaigns.CreateCampaign(c.UserContext(), currentUserID(c), campaign)
	if err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.Created(c, created)
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	result, err := h.campaigns.GetCampaignsForOwner(c.UserContext(), currentUserID(c), params)
	if err != nil {
		return httpresp.Error(c, err)
	}
	return c.JSON(result)
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return httpresp.BadRequest(c, "invalid campaign id")
	}
	campaign, err := h.campaigns.GetCampaign(c.UserContext(), id, currentUserID(c), false)
	if err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.OK(c, campaign)
}

func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return httpresp.BadRequest(c, "invalid campaign id")
	}
	var updates models.Campaign
	if err := c.BodyParser(&updates); err != nil {
		return httpresp.BadRequest(c, "invalid request body")
	}
	if err := h.campaigns.UpdateCampaign(c.UserContext(), id, currentUserID(c), updates); err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.OK(c, fiber.Map{"updated": true})
}

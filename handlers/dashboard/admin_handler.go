package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tarweej.app/pkg/httpresp"
	"tarweej.app/pkg/queryparams"
	"tarweej.app/services"
)

// AdminHandler covers the back-office surface: influencer approval,
// campaign oversight and payment completion.
type AdminHandler struct {
	influencers services.IInfluencerService
	campaigns   services.ICampaignService
	invitations services.IInvitationService
}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{
		influencers: services.NewInfluencerService(),
		campaigns:   services.NewCampaignService(),
		invitations: services.NewInvitationService(),
	}
}

func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func parseListParams(c *fiber.Ctx) queryparams.ListParams {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		return queryparams.DefaultListParams("created_at")
	}
	return params
}

func (h *AdminHandler) ListInfluencers(c *fiber.Ctx) error {
	result, err := h.influencers.ListProfiles(c.UserContext(), parseListParams(c))
	if err != nil {
		return httpresp.Error(c, err)
	}
	return c.JSON(result)
}

type approvalRequest struct {
	Approved bool `json:"approved"`
}

func (h *AdminHandler) SetInfluencerApproval(c *fiber.Ctx) error {
	profileID, ok := paramID(c, "id")
	if !ok {
		return httpresp.BadRequest(c, "invalid profile id")
	}
	var req approvalRequest
	if err := c.BodyParser(&req); err != nil {
		return httpresp.BadRequest(c, "invalid request body")
	}
	if err := h.influencers.SetApproval(c.UserContext(), profileID, req.Approved); err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.OK(c, fiber.Map{"approved": req.Approved})
}

func (h *AdminHandler) ListCampaigns(c *fiber.Ctx) error {
	result, err := h.campaigns.GetAllCampaigns(c.UserContext(), parseListParams(c))
	if err != nil {
		return httpresp.Error(c, err)
	}
	return c.JSON(result)
}

// ListInvitations shows every invitation with payment eligibility computed
// at read time, so an auto-approval the sweep has not persisted yet still
// shows as payable.
func (h *AdminHandler) ListInvitations(c *fiber.Ctx) error {
	result, err := h.invitations.GetAll(c.UserContext(), parseListParams(c))
	if err != nil {
		return httpresp.Error(c, err)
	}
	return c.JSON(result)
}

func (h *AdminHandler) MarkPaymentCompleted(c *fiber.Ctx) error {
	invitationID, ok := paramID(c, "id")
	if !ok {
		return httpresp.BadRequest(c, "invalid invitation id")
	}
	if err := h.invitations.MarkPaymentCompleted(c.UserContext(), invitationID); err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.OK(c, fiber.Map{"payment_completed": true})
}

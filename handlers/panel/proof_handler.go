package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tarweej.app/pkg/httpresp"
	"tarweej.app/services"
)

// ProofHandler covers the owner's review of submitted content.
type ProofHandler struct {
	invitations services.IInvitationService
}

func NewProofHandler() *ProofHandler {
	return &ProofHandler{invitations: services.NewInvitationService()}
}

// ListCampaignInvitations shows the owner every invitation on a campaign.
func (h *ProofHandler) ListCampaignInvitations(c *fiber.Ctx) error {
	campaignID, ok := paramID(c, "id")
	if !ok {
		return httpresp.BadRequest(c, "invalid campaign id")
	}
	invitations, err := h.invitations.GetForCampaign(c.UserContext(), campaignID, currentUserID(c))
	if err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.OK(c, invitations)
}

func (h *ProofHandler) ApproveProof(c *fiber.Ctx) error {
	invitationID, ok := paramID(c, "invitationID")
	if !ok {
		return httpresp.BadRequest(c, "invalid invitation id")
	}
	if err := h.invitations.ApproveProof(c.UserContext(), invitationID, currentUserID(c)); err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.OK(c, fiber.Map{"approved": true})
}

type rejectProofRequest struct {
	Reason string `json:"reason"`
}

func (h *ProofHandler) RejectProof(c *fiber.Ctx) error {
	invitationID, ok := paramID(c, "invitationID")
	if !ok {
		return httpresp.BadRequest(c, "invalid invitation id")
	}
	var req rejectProofRequest
	if err := c.BodyParser(&req); err != nil {
		return httpresp.BadRequest(c, "invalid request body")
	}
	if err := h.invitations.RejectProof(c.UserContext(), invitationID, currentUserID(c), req.Reason); err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.OK(c, fiber.Map{"rejected": true})
}

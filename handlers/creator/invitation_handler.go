package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tarweej.app/pkg/httpresp"
	"tarweej.app/pkg/queryparams"
	"tarweej.app/services"
)

// InvitationHandler covers the influencer side of the invitation workflow:
// list, view, respond, submit proof.
type InvitationHandler struct {
	invitations services.IInvitationService
	influencers services.IInfluencerService
}

func NewInvitationHandler() *InvitationHandler {
	return &InvitationHandler{
		invitations: services.NewInvitationService(),
		influencers: services.NewInfluencerService(),
	}
}

// profileID resolves the acting user's influencer profile.
func (h *InvitationHandler) profileID(c *fiber.Ctx) (uint, error) {
	profile, err := h.influencers.GetProfileByUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return 0, err
	}
	return profile.ID, nil
}

func (h *InvitationHandler) ListMyInvitations(c *fiber.Ctx) error {
	influencerID, err := h.profileID(c)
	if err != nil {
		return httpresp.Error(c, err)
	}
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	result, err := h.invitations.GetForInfluencer(c.UserContext(), influencerID, params)
	if err != nil {
		return httpresp.Error(c, err)
	}
	return c.JSON(result)
}

// GetInvitationByKey resolves an invitation from the public key in its
// notification link.
func (h *InvitationHandler) GetInvitationByKey(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return httpresp.BadRequest(c, "invitation key is required")
	}
	influencerID, err := h.profileID(c)
	if err != nil {
		return httpresp.Error(c, err)
	}
	invitation, err := h.invitations.GetByKey(c.UserContext(), key, influencerID)
	if err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.OK(c, invitation)
}

func (h *InvitationHandler) AcceptInvitation(c *fiber.Ctx) error {
	invitationID, ok := paramID(c, "id")
	if !ok {
		return httpresp.BadRequest(c, "invalid invitation id")
	}
	influencerID, err := h.profileID(c)
	if err != nil {
		return httpresp.Error(c, err)
	}
	if err := h.invitations.Accept(c.UserContext(), invitationID, influencerID); err != nil {
		return httpresp.Error(c, err)
	}
	// The client shows the next steps (visit, record, upload, get paid);
	// no workflow state backs that screen.
	return httpresp.OK(c, fiber.Map{"accepted": true})
}

func (h *InvitationHandler) DeclineInvitation(c *fiber.Ctx) error {
	invitationID, ok := paramID(c, "id")
	if !ok {
		return httpresp.BadRequest(c, "invalid invitation id")
	}
	influencerID, err := h.profileID(c)
	if err != nil {
		return httpresp.Error(c, err)
	}
	replacement, err := h.invitations.Decline(c.UserContext(), invitationID, influencerID)
	if err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.OK(c, fiber.Map{
		"declined":    true,
		"replacement": replacement,
	})
}

type submitProofRequest struct {
	ProofURL string `json:"proof_url"`
}

func (h *InvitationHandler) SubmitProof(c *fiber.Ctx) error {
	invitationID, ok := paramID(c, "id")
	if !ok {
		return httpresp.BadRequest(c, "invalid invitation id")
	}
	var req submitProofRequest
	if err := c.BodyParser(&req); err != nil {
		return httpresp.BadRequest(c, "invalid request body")
	}
	influencerID, err := h.profileID(c)
	if err != nil {
		return httpresp.Error(c, err)
	}
	if err := h.invitations.SubmitProof(c.UserContext(), invitationID, influencerID, req.ProofURL); err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.OK(c, fiber.Map{"submitted": true})
}

package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"tarweej.app/pkg/httpresp"
	"tarweej.app/services"
)

// MatchingHandler covers the owner's matching and suggestion-approval
// surface.
type MatchingHandler struct {
	matching services.IMatchingService
}

func NewMatchingHandler() *MatchingHandler {
	return &MatchingHandler{matching: services.NewMatchingService()}
}

// RunMatching triggers (or re-triggers) a matching run for the campaign.
func (h *MatchingHandler) RunMatching(c *fiber.Ctx) error {
	campaignID, ok := paramID(c, "id")
	if !ok {
		return httpresp.BadRequest(c, "invalid campaign id")
	}
	suggestions, err := h.matching.RunMatching(c.UserContext(), campaignID, currentUserID(c))
	if err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.OK(c, suggestions)
}

func (h *MatchingHandler) ListSuggestions(c *fiber.Ctx) error {
	campaignID, ok := paramID(c, "id")
	if !ok {
		return httpresp.BadRequest(c, "invalid campaign id")
	}
	suggestions, err := h.matching.GetSuggestions(c.UserContext(), campaignID, currentUserID(c))
	if err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.OK(c, suggestions)
}

type scheduleRequest struct {
	ScheduledDate *time.Time `json:"scheduled_date"`
}

// ScheduleSuggestion sets the visit date copied onto the invitation at
// approval time.
func (h *MatchingHandler) ScheduleSuggestion(c *fiber.Ctx) error {
	suggestionID, ok := paramID(c, "suggestionID")
	if !ok {
		return httpresp.BadRequest(c, "invalid suggestion id")
	}
	var req scheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return httpresp.BadRequest(c, "invalid request body")
	}
	if err := h.matching.UpdateSuggestionSchedule(c.UserContext(), suggestionID, currentUserID(c), req.ScheduledDate); err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.OK(c, fiber.Map{"scheduled": true})
}

func (h *MatchingHandler) ApproveSuggestion(c *fiber.Ctx) error {
	suggestionID, ok := paramID(c, "suggestionID")
	if !ok {
		return httpresp.BadRequest(c, "invalid suggestion id")
	}
	invitation, err := h.matching.ApproveSuggestion(c.UserContext(), suggestionID, currentUserID(c))
	if err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.Created(c, invitation)
}

func (h *MatchingHandler) ApproveAllSuggestions(c *fiber.Ctx) error {
	campaignID, ok := paramID(c, "id")
	if !ok {
		return httpresp.BadRequest(c, "invalid campaign id")
	}
	invitations, err := h.matching.ApproveAllSuggestions(c.UserContext(), campaignID, currentUserID(c))
	if err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.Created(c, invitations)
}

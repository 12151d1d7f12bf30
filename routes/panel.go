package routes

import (
	"github.com/gofiber/fiber/v2"

	panelHandlers "tarweej.app/handlers/panel"
	"tarweej.app/models"
	"tarweej.app/services"
)

// registerPanelRoutes is the owner-facing surface: campaigns, matching,
// suggestion approval and proof review.
func registerPanelRoutes(app *fiber.App) {
	campaigns := panelHandlers.NewCampaignHandler()
	matching := panelHandlers.NewMatchingHandler()
	proofs := panelHandlers.NewProofHandler()

	group := app.Group("/panel", requireRole(services.NewAuthService(), models.RoleOwner))

	group.Post("/campaigns", campaigns.CreateCampaign)
	group.Get("/campaigns", campaigns.ListCampaigns)
	group.Get("/campaigns/:id", campaigns.GetCampaign)
	group.Put("/campaigns/:id", campaigns.UpdateCampaign)

	group.Post("/campaigns/:id/matching", matching.RunMatching)
	group.Get("/campaigns/:id/suggestions", matching.ListSuggestions)
	group.Put("/suggestions/:suggestionID/schedule", matching.ScheduleSuggestion)
	group.Post("/suggestions/:suggestionID/approve", matching.ApproveSuggestion)
	group.Post("/campaigns/:id/suggestions/approve-all", matching.ApproveAllSuggestions)

	group.Get("/campaigns/:id/invitations", proofs.ListCampaignInvitations)
	group.Post("/invitations/:invitationID/proof/approve", proofs.ApproveProof)
	group.Post("/invitations/:invitationID/proof/reject", proofs.RejectProof)
}

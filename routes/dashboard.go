package routes

import (
	"github.com/gofiber/fiber/v2"

	dashboardHandlers "tarweej.app/handlers/dashboard"
	"tarweej.app/models"
	"tarweej.app/services"
)

// registerDashboardRoutes is the admin back office: influencer approval,
// campaign oversight and payouts.
func registerDashboardRoutes(app *fiber.App) {
	admin := dashboardHandlers.NewAdminHandler()

	group := app.Group("/dashboard", requireRole(services.NewAuthService(), models.RoleAdmin))

	group.Get("/influencers", admin.ListInfluencers)
	group.Put("/influencers/:id/approval", admin.SetInfluencerApproval)

	group.Get("/campaigns", admin.ListCampaigns)

	group.Get("/invitations", admin.ListInvitations)
	group.Post("/invitations/:id/payment", admin.MarkPaymentCompleted)
}

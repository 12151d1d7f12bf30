package routes

import (
	"github.com/gofiber/fiber/v2"

	creatorHandlers "tarweej.app/handlers/creator"
	"tarweej.app/models"
	"tarweej.app/services"
)

// registerCreatorRoutes is the influencer-facing surface: profile,
// invitations and proof submission.
func registerCreatorRoutes(app *fiber.App) {
	profiles := creatorHandlers.NewProfileHandler()
	invitations := creatorHandlers.NewInvitationHandler()

	group := app.Group("/creator", requireRole(services.NewAuthService(), models.RoleInfluencer))

	group.Post("/profile", profiles.CreateProfile)
	group.Get("/profile", profiles.GetMyProfile)
	group.Put("/profile", profiles.UpdateProfile)
	group.Put("/profile/bank", profiles.UpdateBankDetails)

	group.Get("/invitations", invitations.ListMyInvitations)
	group.Get("/invitations/key/:key", invitations.GetInvitationByKey)
	group.Post("/invitations/:id/accept", invitations.AcceptInvitation)
	group.Post("/invitations/:id/decline", invitations.DeclineInvitation)
	group.Post("/invitations/:id/proof", invitations.SubmitProof)
}

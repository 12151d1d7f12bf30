// Package httpresp standardizes the JSON envelopes and error-to-status
// mapping used by every handler.
package httpresp

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tarweej.app/repositories"
	"tarweej.app/services"
)

// OK wraps a successful payload.
func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"data": data})
}

// Created wraps a successful creation.
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": data})
}

// Error renders a service error with the right status code.
func Error(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

// BadRequest renders a boundary validation failure.
func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrCampaignNotFound),
		errors.Is(err, services.ErrInvitationNotFound),
		errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrSuggestionNotFound),
		errors.Is(err, repositories.ErrNotFound):
		return fiber.StatusNotFound

	case errors.Is(err, services.ErrCampaignForbidden),
		errors.Is(err, services.ErrInvitationForbidden):
		return fiber.StatusForbidden

	case errors.Is(err, services.ErrInvitationConflict),
		errors.Is(err, services.ErrSuggestionSelected),
		errors.Is(err, services.ErrAlreadyInvited),
		errors.Is(err, services.ErrProfileExists),
		errors.Is(err, repositories.ErrConflict):
		return fiber.StatusConflict

	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrTokenInvalid):
		return fiber.StatusUnauthorized

	case errors.Is(err, services.ErrAccountDisabled):
		return fiber.StatusForbidden

	case errors.Is(err, services.ErrCampaignInvalidInput),
		errors.Is(err, services.ErrCampaignTitleRequired),
		errors.Is(err, services.ErrCampaignCityRequired),
		errors.Is(err, services.ErrCampaignBudgetTooLow),
		errors.Is(err, services.ErrProfileInvalidInput),
		errors.Is(err, services.ErrProfileNameRequired),
		errors.Is(err, services.ErrProfileCityRequired),
		errors.Is(err, services.ErrProfileNoCompensation),
		errors.Is(err, services.ErrProfileIBANInvalid),
		errors.Is(err, services.ErrProofURLRequired),
		errors.Is(err, services.ErrRejectReasonNeeded),
		errors.Is(err, services.ErrNotPaymentEligible),
		errors.Is(err, services.ErrNoCandidates),
		errors.Is(err, services.ErrCampaignNotMatchable):
		return fiber.StatusUnprocessableEntity

	case errors.Is(err, services.ErrMatchingFailed):
		return fiber.StatusBadGateway

	default:
		return fiber.StatusInternalServerError
	}
}

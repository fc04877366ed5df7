package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/WavesCapital/Hybrid-House-sub001/internal/models"
	"github.com/WavesCapital/Hybrid-House-sub001/internal/repository"
	"github.com/WavesCapital/Hybrid-House-sub001/internal/services"
)

type athleteProfileService interface {
	SubmitAthleteProfile(ctx context.Context, raw map[string]any, owningUserID *string, isPublic bool) (*models.AthleteProfile, error)
	GetAthleteDetail(ctx context.Context, id uuid.UUID) (*models.AthleteProfileDetail, error)
	RecordScore(ctx context.Context, id uuid.UUID, bundle models.ScoreBundle) error
	SetPrivacy(ctx context.Context, id uuid.UUID, isPublic bool) error
}

type AthleteProfileHandler struct {
	service athleteProfileService
}

func NewAthleteProfileHandler(service athleteProfileService) *AthleteProfileHandler {
	return &AthleteProfileHandler{service: service}
}

type createAthleteProfileRequest struct {
	ProfileJSON  map[string]any `json:"profile_json"`
	OwningUserID *string        `json:"owning_user_id"`
	IsPublic     *bool          `json:"is_public"`
}

func (h *AthleteProfileHandler) CreateAthleteProfile(c *fiber.Ctx) error {
	var req createAthleteProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ProfileJSON == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "profile_json must be an object"})
	}

	isPublic := false
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	profile, err := h.service.SubmitAthleteProfile(c.Context(), req.ProfileJSON, req.OwningUserID, isPublic)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidOwner) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "owning_user_id references an unknown user"})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Store unavailable"})
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// GetAthleteProfile is the share-link surface: private profiles are
// served to unauthenticated callers as well.
func (h *AthleteProfileHandler) GetAthleteProfile(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	detail, err := h.service.GetAthleteDetail(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Store unavailable"})
	}
	return c.JSON(detail)
}

// RecordScore is the oracle-callback write path.
func (h *AthleteProfileHandler) RecordScore(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	var bundle models.ScoreBundle
	if err := c.BodyParser(&bundle); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.RecordScore(c.Context(), id, bundle); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Store unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

type setPrivacyRequest struct {
	IsPublic *bool `json:"is_public"`
}

func (h *AthleteProfileHandler) SetPrivacy(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	var req setPrivacyRequest
	if err := c.BodyParser(&req); err != nil || req.IsPublic == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "is_public is required"})
	}

	if err := h.service.SetPrivacy(c.Context(), id, *req.IsPublic); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Store unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok", "is_public": *req.IsPublic})
}

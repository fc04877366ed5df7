package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/WavesCapital/Hybrid-House-sub001/internal/coerce"
	"github.com/WavesCapital/Hybrid-House-sub001/internal/models"
	"github.com/WavesCapital/Hybrid-House-sub001/internal/repository"
)

type userProfileService interface {
	UpsertUserProfile(ctx context.Context, userID string, patch repository.UserProfilePatch) (*models.UserProfile, error)
	GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

type UserProfileHandler struct {
	service userProfileService
}

func NewUserProfileHandler(service userProfileService) *UserProfileHandler {
	return &UserProfileHandler{service: service}
}

type upsertUserProfileRequest struct {
	Email       *string   `json:"email"`
	DisplayName *string   `json:"display_name"`
	Name        *string   `json:"name"`
	FirstName   *string   `json:"first_name"`
	LastName    *string   `json:"last_name"`
	DateOfBirth *string   `json:"date_of_birth"`
	Gender      *string   `json:"gender"`
	Country     *string   `json:"country"`
	HeightFt    *float64  `json:"height_ft"`
	HeightIn    *float64  `json:"height_in"`
	WeightLb    *float64  `json:"weight_lb"`
	Wearables   *[]string `json:"wearables"`
}

// UpsertUserProfile applies a partial update: omitted fields are
// preserved, explicit empty strings clear the column.
func (h *UserProfileHandler) UpsertUserProfile(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	var req upsertUserProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	patch := repository.UserProfilePatch{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Name:        req.Name,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Gender:      req.Gender,
		Country:     req.Country,
		WeightLb:    req.WeightLb,
		Wearables:   req.Wearables,
	}
	if req.DateOfBirth != nil {
		if strings.TrimSpace(*req.DateOfBirth) == "" {
			patch.ClearDateOfBirth = true
		} else {
			patch.DateOfBirth = coerce.Date(*req.DateOfBirth)
		}
	}
	if req.HeightFt != nil || req.HeightIn != nil {
		patch.HeightIn = coerce.Inches(anyNumber(req.HeightFt), anyNumber(req.HeightIn))
	}

	profile, err := h.service.UpsertUserProfile(c.Context(), userID, patch)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Store unavailable"})
	}
	return c.JSON(profile)
}

func (h *UserProfileHandler) GetUserProfile(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	profile, err := h.service.GetUserProfile(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Store unavailable"})
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User profile not found"})
	}
	return c.JSON(profile)
}

func anyNumber(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

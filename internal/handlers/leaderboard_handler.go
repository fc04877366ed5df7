package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/WavesCapital/Hybrid-House-sub001/internal/models"
	"github.com/WavesCapital/Hybrid-House-sub001/internal/services"
)

type leaderboardBuilder interface {
	BuildLeaderboard(ctx context.Context) (*models.LeaderboardView, error)
}

type LeaderboardHandler struct {
	ranking leaderboardBuilder
}

func NewLeaderboardHandler(ranking leaderboardBuilder) *LeaderboardHandler {
	return &LeaderboardHandler{ranking: ranking}
}

// GetLeaderboard computes the ranking view per call; there is no cache.
func (h *LeaderboardHandler) GetLeaderboard(c *fiber.Ctx) error {
	view, err := h.ranking.BuildLeaderboard(c.Context())
	if err != nil {
		if errors.Is(err, services.ErrStoreUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Store unavailable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build leaderboard"})
	}
	return c.JSON(view)
}

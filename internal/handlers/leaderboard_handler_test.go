package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/WavesCapital/Hybrid-House-sub001/internal/models"
	"github.com/WavesCapital/Hybrid-House-sub001/internal/services"
)

type stubBuilder struct {
	view *models.LeaderboardView
	err  error
}

func (s *stubBuilder) BuildLeaderboard(_ context.Context) (*models.LeaderboardView, error) {
	return s.view, s.err
}

func TestGetLeaderboardReturnsView(t *testing.T) {
	score := 96.8
	builder := &stubBuilder{view: &models.LeaderboardView{
		Leaderboard: []models.LeaderboardEntry{{
			Rank:        1,
			DisplayName: "Nick Bare",
			Score:       score,
			ProfileID:   uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		}},
		Total:               1,
		TotalPublicAthletes: 1,
		RankingMetadata:     models.RankingMetadata{Count: 1},
	}}
	handler := NewLeaderboardHandler(builder)

	app := fiber.New()
	app.Get("/leaderboard", handler.GetLeaderboard)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/leaderboard", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Leaderboard []models.LeaderboardEntry `json:"leaderboard"`
		Total       int                       `json:"total"`
		TotalPublic int                       `json:"total_public_athletes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body.Leaderboard) != 1 || body.Leaderboard[0].DisplayName != "Nick Bare" {
		t.Errorf("unexpected leaderboard %+v", body.Leaderboard)
	}
	if body.Total != 1 || body.TotalPublic != 1 {
		t.Errorf("expected total and total_public_athletes of 1, got %d / %d", body.Total, body.TotalPublic)
	}
}

// Absent values must serialise as explicit null so clients can tell
// "unknown" from "field renamed".
func TestGetLeaderboardEmitsExplicitNulls(t *testing.T) {
	builder := &stubBuilder{view: &models.LeaderboardView{
		Leaderboard: []models.LeaderboardEntry{{
			Rank:        1,
			DisplayName: "Anonymous",
			Score:       50,
		}},
		Total:               1,
		TotalPublicAthletes: 1,
	}}
	handler := NewLeaderboardHandler(builder)

	app := fiber.New()
	app.Get("/leaderboard", handler.GetLeaderboard)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/leaderboard", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	body := string(raw)
	for _, key := range []string{`"age":null`, `"gender":null`, `"country":null`, `"owning_user_id":null`, `"percentile_breakpoints":null`, `"last_updated":null`} {
		if !strings.Contains(body, key) {
			t.Errorf("expected %s in response, body: %s", key, body)
		}
	}
}

func TestGetLeaderboardStoreFailureIs503(t *testing.T) {
	handler := NewLeaderboardHandler(&stubBuilder{err: services.ErrStoreUnavailable})

	app := fiber.New()
	app.Get("/leaderboard", handler.GetLeaderboard)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/leaderboard", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

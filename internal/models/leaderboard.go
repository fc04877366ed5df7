package models

import (
	"time"

	"github.com/google/uuid"
)

// ScoreBreakdown carries the six sub-scores behind a leaderboard entry.
type ScoreBreakdown struct {
	StrengthScore float64 `json:"strengthScore"`
	SpeedScore    float64 `json:"speedScore"`
	VO2Score      float64 `json:"vo2Score"`
	DistanceScore float64 `json:"distanceScore"`
	VolumeScore   float64 `json:"volumeScore"`
	RecoveryScore float64 `json:"recoveryScore"`
}

// LeaderboardEntry is one ranked row. Derived on demand, never stored.
type LeaderboardEntry struct {
	Rank           int            `json:"rank"`
	DisplayName    string         `json:"display_name"`
	Score          float64        `json:"score"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`
	ProfileID      uuid.UUID      `json:"profile_id"`
	OwningUserID   *string        `json:"owning_user_id"`
	Age            *int           `json:"age"`
	Gender         *string        `json:"gender"`
	Country        *string        `json:"country"`
}

type ScoreRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type PercentileBreakpoints struct {
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

// RankingMetadata aggregates the ranked population. Pointer fields are
// absent (null) on an empty leaderboard.
type RankingMetadata struct {
	ScoreRange            *ScoreRange            `json:"score_range"`
	AvgScore              *float64               `json:"avg_score"`
	PercentileBreakpoints *PercentileBreakpoints `json:"percentile_breakpoints"`
	Count                 int                    `json:"count"`
	LastUpdated           *time.Time             `json:"last_updated"`
}

// LeaderboardView is the GET /leaderboard response body.
type LeaderboardView struct {
	Leaderboard         []LeaderboardEntry `json:"leaderboard"`
	Total               int                `json:"total"`
	TotalPublicAthletes int                `json:"total_public_athletes"`
	RankingMetadata     RankingMetadata    `json:"ranking_metadata"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// AthleteProfile is one submission of performance data, owned by at most
// one user. Orphan profiles (no owning user) are valid.
type AthleteProfile struct {
	ID           uuid.UUID    `json:"id"`
	OwningUserID *string      `json:"owning_user_id"`
	ProfileJSON  ProfileJSON  `json:"profile_json"`
	ScoreData    *ScoreBundle `json:"score_data"`
	IsPublic     bool         `json:"is_public"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ProfileJSON is the normalised performance record stored on an athlete
// profile. Its wire shape is consumed by the score oracle; changes must be
// additive only. Every present PR time string has its _seconds twin present
// and consistent; the store is the single writer of the twins.
type ProfileJSON struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	DisplayName *string `json:"display_name"`
	Sex         *string `json:"sex"`
	Country     *string `json:"country"`

	BodyMetrics BodyMetrics `json:"body_metrics"`

	PBMile         *string `json:"pb_mile"`
	PB5K           *string `json:"pb_5k"`
	PB10K          *string `json:"pb_10k"`
	PBHalfMarathon *string `json:"pb_half_marathon"`
	PBMarathon     *string `json:"pb_marathon"`

	PBMileSeconds         *int `json:"pb_mile_seconds"`
	PB5KSeconds           *int `json:"pb_5k_seconds"`
	PB10KSeconds          *int `json:"pb_10k_seconds"`
	PBHalfMarathonSeconds *int `json:"pb_half_marathon_seconds"`
	PBMarathonSeconds     *int `json:"pb_marathon_seconds"`

	WeeklyMiles *float64 `json:"weekly_miles"`
	LongRun     *float64 `json:"long_run"`

	PBBench1RM    *float64 `json:"pb_bench_1rm"`
	PBSquat1RM    *float64 `json:"pb_squat_1rm"`
	PBDeadlift1RM *float64 `json:"pb_deadlift_1rm"`
}

// BodyMetrics is the body-composition block of a profile. HeightIn is
// total inches after feet/inches composition.
type BodyMetrics struct {
	HeightIn     *float64 `json:"height_in"`
	WeightLb     *float64 `json:"weight_lb"`
	VO2Max       *float64 `json:"vo2_max"`
	RestingHRBPM *float64 `json:"resting_hr_bpm"`
	HRVMs        *float64 `json:"hrv_ms"`
}

// ScoredAthlete pairs an athlete profile with its owning user profile when
// the relation resolves.
type ScoredAthlete struct {
	Athlete AthleteProfile
	Owner   *UserProfile
}

// AthleteProfileDetail is the share-link detail view.
type AthleteProfileDetail struct {
	ProfileID   uuid.UUID    `json:"profile_id"`
	ProfileJSON ProfileJSON  `json:"profile_json"`
	ScoreData   *ScoreBundle `json:"score_data"`
	UserProfile *UserProfile `json:"user_profile"`
}

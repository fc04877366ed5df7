package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/WavesCapital/Hybrid-House-sub001/internal/models"
)

var (
	// ErrOracleEmpty means the oracle answered 200 with an empty body.
	// The submission itself succeeded; the profile stays scoreless.
	ErrOracleEmpty = errors.New("oracle returned empty response")
	// ErrOracleUnavailable covers non-200 responses, malformed bodies
	// and timeouts.
	ErrOracleUnavailable = errors.New("oracle unavailable")
)

// ScoreOracle is the adapter around the external scoring service. No
// other component talks to the oracle directly.
type ScoreOracle struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

func NewScoreOracle(url string, timeout time.Duration, log *logrus.Logger) *ScoreOracle {
	return &ScoreOracle{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// RequestScore sends the normalised profile to the oracle and returns
// its bundle. The outbound payload never carries nulls: the oracle
// silently rejects them by returning an empty body, so missing numbers
// become 0, missing text becomes "", missing lists become [].
func (o *ScoreOracle) RequestScore(ctx context.Context, profile models.ProfileJSON) (*models.ScoreBundle, error) {
	body, err := json.Marshal(map[string]any{
		"athleteProfile": sanitizeProfile(profile),
		"deliverable":    "score",
	})
	if err != nil {
		return nil, fmt.Errorf("encoding oracle payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building oracle request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		o.log.WithError(err).Warn("score oracle request failed")
		return nil, ErrOracleUnavailable
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		o.log.WithError(err).Warn("reading score oracle response failed")
		return nil, ErrOracleUnavailable
	}

	if resp.StatusCode != http.StatusOK {
		o.log.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   truncate(string(raw), 512),
		}).Warn("score oracle returned non-200")
		return nil, ErrOracleUnavailable
	}

	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, ErrOracleEmpty
	}

	var bundle models.ScoreBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		o.log.WithError(err).Warn("score oracle returned malformed JSON")
		return nil, ErrOracleUnavailable
	}
	if !bundle.IsComplete() {
		o.log.Warn("score oracle returned incomplete bundle")
		return nil, ErrOracleUnavailable
	}
	return &bundle, nil
}

// sanitizeProfile maps the stored record onto the oracle's wire shape
// with zero values in place of every absent field.
func sanitizeProfile(p models.ProfileJSON) map[string]any {
	return map[string]any{
		"first_name":   textOrEmpty(p.FirstName),
		"last_name":    textOrEmpty(p.LastName),
		"email":        textOrEmpty(p.Email),
		"display_name": textOrEmpty(p.DisplayName),
		"sex":          textOrEmpty(p.Sex),
		"country":      textOrEmpty(p.Country),

		"body_metrics": map[string]any{
			"height_in":      numberOrZero(p.BodyMetrics.HeightIn),
			"weight_lb":      numberOrZero(p.BodyMetrics.WeightLb),
			"vo2_max":        numberOrZero(p.BodyMetrics.VO2Max),
			"resting_hr_bpm": numberOrZero(p.BodyMetrics.RestingHRBPM),
			"hrv_ms":         numberOrZero(p.BodyMetrics.HRVMs),
		},

		"pb_mile":          textOrEmpty(p.PBMile),
		"pb_5k":            textOrEmpty(p.PB5K),
		"pb_10k":           textOrEmpty(p.PB10K),
		"pb_half_marathon": textOrEmpty(p.PBHalfMarathon),
		"pb_marathon":      textOrEmpty(p.PBMarathon),

		"pb_mile_seconds":          intOrZero(p.PBMileSeconds),
		"pb_5k_seconds":            intOrZero(p.PB5KSeconds),
		"pb_10k_seconds":           intOrZero(p.PB10KSeconds),
		"pb_half_marathon_seconds": intOrZero(p.PBHalfMarathonSeconds),
		"pb_marathon_seconds":      intOrZero(p.PBMarathonSeconds),

		"weekly_miles": numberOrZero(p.WeeklyMiles),
		"long_run":     numberOrZero(p.LongRun),

		"pb_bench_1rm":    numberOrZero(p.PBBench1RM),
		"pb_squat_1rm":    numberOrZero(p.PBSquat1RM),
		"pb_deadlift_1rm": numberOrZero(p.PBDeadlift1RM),

		"wearables": []string{},
	}
}

func textOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func numberOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

package models

// ScoreBundle is the payload produced by the external scoring service.
// The seven required scores use pointers so a missing score stays
// distinguishable from a literal zero.
type ScoreBundle struct {
	HybridScore   *float64 `json:"hybridScore"`
	StrengthScore *float64 `json:"strengthScore"`
	SpeedScore    *float64 `json:"speedScore"`
	VO2Score      *float64 `json:"vo2Score"`
	DistanceScore *float64 `json:"distanceScore"`
	VolumeScore   *float64 `json:"volumeScore"`
	RecoveryScore *float64 `json:"recoveryScore"`

	EnduranceScore *float64 `json:"enduranceScore"`
	BalanceBonus   *float64 `json:"balanceBonus"`
	HybridPenalty  *float64 `json:"hybridPenalty"`
	Tips           []string `json:"tips"`
}

// IsComplete reports whether all seven required scores are present.
// enduranceScore is optional and does not participate.
func (b *ScoreBundle) IsComplete() bool {
	if b == nil {
		return false
	}
	return b.HybridScore != nil &&
		b.StrengthScore != nil &&
		b.SpeedScore != nil &&
		b.VO2Score != nil &&
		b.DistanceScore != nil &&
		b.VolumeScore != nil &&
		b.RecoveryScore != nil
}

// Breakdown returns the six sub-scores shown on a leaderboard entry.
// Only meaningful on a complete bundle.
func (b *ScoreBundle) Breakdown() ScoreBreakdown {
	return ScoreBreakdown{
		StrengthScore: deref(b.StrengthScore),
		SpeedScore:    deref(b.SpeedScore),
		VO2Score:      deref(b.VO2Score),
		DistanceScore: deref(b.DistanceScore),
		VolumeScore:   deref(b.VolumeScore),
		RecoveryScore: deref(b.RecoveryScore),
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

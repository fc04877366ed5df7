// Package coerce is the single normalisation boundary between loosely
// typed submitted JSON and the strict numeric schema the ranking engine
// consumes. All functions are total: unparsable input yields nil, never
// an error.
package coerce

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/WavesCapital/Hybrid-House-sub001/internal/models"
)

// Seconds parses "MM:SS" or "H:MM:SS" into integer seconds. Minutes and
// seconds after the first segment must be in [0,59].
func Seconds(raw string) *int {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	switch len(parts) {
	case 2:
		m, okM := parseSegment(parts[0])
		s, okS := parseSegment(parts[1])
		if !okM || !okS || s > 59 {
			return nil
		}
		total := m*60 + s
		return &total
	case 3:
		h, okH := parseSegment(parts[0])
		m, okM := parseSegment(parts[1])
		s, okS := parseSegment(parts[2])
		if !okH || !okM || !okS || m > 59 || s > 59 {
			return nil
		}
		total := h*3600 + m*60 + s
		return &total
	default:
		return nil
	}
}

func parseSegment(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Date parses "YYYY-MM-DD" or "MM/DD/YYYY" into a calendar date (UTC
// midnight). Anything else is absent.
func Date(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"2006-01-02", "01/02/2006"} {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return &t
		}
	}
	return nil
}

// Text trims a raw value into a non-empty string; empty or non-string
// input is absent.
func Text(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Number coerces a raw JSON value into a float64. Numeric strings are
// accepted; NaN/Inf and everything else is absent.
func Number(v any) *float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
		return &n
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// Pounds coerces a strength PR into decimal pounds. Accepts a plain
// number or an object carrying weight_lb (or weight); reps on the object
// are ignored, the bar weight is what gets stored.
func Pounds(v any) *float64 {
	if obj, ok := v.(map[string]any); ok {
		if lb := Number(obj["weight_lb"]); lb != nil {
			return lb
		}
		return Number(obj["weight"])
	}
	return Number(v)
}

// Inches composes feet + inches into total inches. With no feet part the
// inches value is taken as an already-total measurement.
func Inches(feet, inches any) *float64 {
	ft := Number(feet)
	in := Number(inches)
	if ft == nil && in == nil {
		return nil
	}
	if ft == nil {
		return in
	}
	total := math.Trunc(*ft)*12 + derefZero(in)
	return &total
}

func derefZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// NormalizeProfile runs every coercer over a raw submitted payload and
// produces the normalised record the store persists. Submitted _seconds
// twins are ignored; they are always re-derived from the time strings.
func NormalizeProfile(raw map[string]any) models.ProfileJSON {
	p := models.ProfileJSON{
		FirstName:   Text(raw["first_name"]),
		LastName:    Text(raw["last_name"]),
		Email:       Text(raw["email"]),
		DisplayName: Text(raw["display_name"]),
		Sex:         Text(raw["sex"]),
		Country:     Text(raw["country"]),
		WeeklyMiles: Number(raw["weekly_miles"]),
		LongRun:     Number(raw["long_run"]),

		PBBench1RM:    Pounds(raw["pb_bench_1rm"]),
		PBSquat1RM:    Pounds(raw["pb_squat_1rm"]),
		PBDeadlift1RM: Pounds(raw["pb_deadlift_1rm"]),
	}

	bm, _ := raw["body_metrics"].(map[string]any)
	p.BodyMetrics = models.BodyMetrics{
		HeightIn:     normalizeHeight(raw, bm),
		WeightLb:     firstNumber(Pounds(field(bm, "weight_lb")), Pounds(raw["weight_lb"])),
		VO2Max:       firstNumber(Number(field(bm, "vo2_max")), Number(raw["vo2_max"])),
		RestingHRBPM: firstNumber(Number(field(bm, "resting_hr_bpm")), Number(raw["resting_hr_bpm"])),
		HRVMs:        firstNumber(Number(field(bm, "hrv_ms")), Number(raw["hrv_ms"])),
	}

	p.PBMile, p.PBMileSeconds = normalizeTime(raw["pb_mile"])
	p.PB5K, p.PB5KSeconds = normalizeTime(raw["pb_5k"])
	p.PB10K, p.PB10KSeconds = normalizeTime(raw["pb_10k"])
	p.PBHalfMarathon, p.PBHalfMarathonSeconds = normalizeTime(raw["pb_half_marathon"])
	p.PBMarathon, p.PBMarathonSeconds = normalizeTime(raw["pb_marathon"])

	return p
}

// normalizeHeight looks for feet/inches in the body_metrics block first,
// then at the top level of the submission.
func normalizeHeight(raw, bm map[string]any) *float64 {
	if h := Inches(field(bm, "height_ft"), field(bm, "height_in")); h != nil {
		return h
	}
	return Inches(raw["height_ft"], raw["height_in"])
}

func normalizeTime(v any) (*string, *int) {
	s := Text(v)
	if s == nil {
		return nil, nil
	}
	secs := Seconds(*s)
	if secs == nil {
		// Not a recognisable time string; keep neither side so the
		// twin invariant holds.
		return nil, nil
	}
	return s, secs
}

func field(m map[string]any, key string) any {
	if m == nil {
		return nil
	}
	return m[key]
}

func firstNumber(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

package coerce

import (
	"testing"
	"time"
)

func TestSecondsParsesRacePRs(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"3:05:00", 11100},
		{"1:25:30", 5130},
		{"5:45", 345},
		{"18:30", 1110},
		{"38:15", 2295},
		{"0:59", 59},
		{"90:00", 5400},
	}
	for _, tc := range cases {
		got := Seconds(tc.in)
		if got == nil {
			t.Fatalf("Seconds(%q) = nil, want %d", tc.in, tc.want)
		}
		if *got != tc.want {
			t.Errorf("Seconds(%q) = %d, want %d", tc.in, *got, tc.want)
		}
	}
}

func TestSecondsRejectsMalformedInput(t *testing.T) {
	for _, in := range []string{"", "fast", "5:60", "1:60:00", "1:00:60", "-5:00", "1:2:3:4", "5"} {
		if got := Seconds(in); got != nil {
			t.Errorf("Seconds(%q) = %d, want nil", in, *got)
		}
	}
}

func TestDateAcceptsBothLayouts(t *testing.T) {
	want := time.Date(2001, 2, 5, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2001-02-05", "02/05/2001"} {
		got := Date(in)
		if got == nil || !got.Equal(want) {
			t.Errorf("Date(%q) = %v, want %v", in, got, want)
		}
	}
	for _, in := range []string{"", "05.02.2001", "2001/02/05", "yesterday"} {
		if Date(in) != nil {
			t.Errorf("Date(%q) should be absent", in)
		}
	}
}

func TestPoundsAcceptsNumberAndObjectForms(t *testing.T) {
	if got := Pounds(225.0); got == nil || *got != 225 {
		t.Errorf("Pounds(225) = %v", got)
	}
	if got := Pounds(map[string]any{"weight_lb": 315.0, "reps": 1.0}); got == nil || *got != 315 {
		t.Errorf("Pounds({weight_lb: 315}) = %v", got)
	}
	if got := Pounds(map[string]any{"weight": 135.0, "reps": 5.0}); got == nil || *got != 135 {
		t.Errorf("Pounds({weight: 135}) = %v", got)
	}
	if got := Pounds(map[string]any{"reps": 5.0}); got != nil {
		t.Errorf("Pounds({reps: 5}) = %v, want nil", *got)
	}
	if got := Pounds(nil); got != nil {
		t.Errorf("Pounds(nil) = %v, want nil", *got)
	}
}

func TestInchesComposesFeetAndInches(t *testing.T) {
	if got := Inches(5.0, 10.0); got == nil || *got != 70 {
		t.Errorf("Inches(5, 10) = %v, want 70", got)
	}
	if got := Inches(6.0, nil); got == nil || *got != 72 {
		t.Errorf("Inches(6, nil) = %v, want 72", got)
	}
	// Bare inches are already a total.
	if got := Inches(nil, 70.0); got == nil || *got != 70 {
		t.Errorf("Inches(nil, 70) = %v, want 70", got)
	}
	if got := Inches(nil, nil); got != nil {
		t.Errorf("Inches(nil, nil) = %v, want nil", *got)
	}
}

func TestTextDropsEmptyAndWhitespace(t *testing.T) {
	if got := Text("  Nick  "); got == nil || *got != "Nick" {
		t.Errorf("Text trimmed = %v", got)
	}
	for _, in := range []any{"", "   ", nil, 42.0} {
		if Text(in) != nil {
			t.Errorf("Text(%v) should be absent", in)
		}
	}
}

func TestNormalizeProfileDerivesSecondsTwins(t *testing.T) {
	p := NormalizeProfile(map[string]any{
		"pb_marathon":      "3:05:00",
		"pb_half_marathon": "1:25:30",
		"pb_mile":          "5:45",
		"pb_5k":            "18:30",
		"pb_10k":           "38:15",
	})

	checks := []struct {
		name string
		got  *int
		want int
	}{
		{"pb_marathon_seconds", p.PBMarathonSeconds, 11100},
		{"pb_half_marathon_seconds", p.PBHalfMarathonSeconds, 5130},
		{"pb_mile_seconds", p.PBMileSeconds, 345},
		{"pb_5k_seconds", p.PB5KSeconds, 1110},
		{"pb_10k_seconds", p.PB10KSeconds, 2295},
	}
	for _, c := range checks {
		if c.got == nil {
			t.Fatalf("%s absent, want %d", c.name, c.want)
		}
		if *c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, *c.got, c.want)
		}
	}
	if p.PBMarathon == nil || *p.PBMarathon != "3:05:00" {
		t.Errorf("raw pb_marathon not preserved: %v", p.PBMarathon)
	}
}

func TestNormalizeProfileComposesHeight(t *testing.T) {
	p := NormalizeProfile(map[string]any{
		"height_ft": 5.0,
		"height_in": 10.0,
	})
	if p.BodyMetrics.HeightIn == nil || *p.BodyMetrics.HeightIn != 70 {
		t.Fatalf("height_in = %v, want 70", p.BodyMetrics.HeightIn)
	}
}

func TestNormalizeProfileDropsMalformedTimeEntirely(t *testing.T) {
	p := NormalizeProfile(map[string]any{"pb_mile": "fast"})
	if p.PBMile != nil || p.PBMileSeconds != nil {
		t.Fatalf("malformed time should drop both sides, got %v / %v", p.PBMile, p.PBMileSeconds)
	}
}

func TestNormalizeProfileStrengthObjects(t *testing.T) {
	p := NormalizeProfile(map[string]any{
		"pb_bench_1rm":    map[string]any{"weight_lb": 225.0, "reps": 1.0},
		"pb_squat_1rm":    315.0,
		"pb_deadlift_1rm": map[string]any{"weight": 405.0},
	})
	if p.PBBench1RM == nil || *p.PBBench1RM != 225 {
		t.Errorf("bench = %v", p.PBBench1RM)
	}
	if p.PBSquat1RM == nil || *p.PBSquat1RM != 315 {
		t.Errorf("squat = %v", p.PBSquat1RM)
	}
	if p.PBDeadlift1RM == nil || *p.PBDeadlift1RM != 405 {
		t.Errorf("deadlift = %v", p.PBDeadlift1RM)
	}
}

func TestNormalizeProfileBodyMetricsBlock(t *testing.T) {
	p := NormalizeProfile(map[string]any{
		"email": "nick@example.com",
		"body_metrics": map[string]any{
			"height_ft":      6.0,
			"height_in":      1.0,
			"weight_lb":      185.0,
			"vo2_max":        52.0,
			"resting_hr_bpm": 46.0,
			"hrv_ms":         95.0,
		},
	})
	if p.BodyMetrics.HeightIn == nil || *p.BodyMetrics.HeightIn != 73 {
		t.Errorf("height = %v, want 73", p.BodyMetrics.HeightIn)
	}
	if p.BodyMetrics.VO2Max == nil || *p.BodyMetrics.VO2Max != 52 {
		t.Errorf("vo2 = %v", p.BodyMetrics.VO2Max)
	}
	if p.Email == nil || *p.Email != "nick@example.com" {
		t.Errorf("email = %v", p.Email)
	}
}

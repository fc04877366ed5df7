package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/WavesCapital/Hybrid-House-sub001/internal/models"
)

// ErrStoreUnavailable is surfaced when the persistence backend times out
// or fails outright.
var ErrStoreUnavailable = errors.New("profile store unavailable")

type ScoredAthleteLister interface {
	ListScoredWithOwner(ctx context.Context) ([]models.ScoredAthlete, error)
}

// RankingService turns the profile store into a deterministic,
// deduplicated, ranked leaderboard. It is stateless; every call computes
// a fresh view.
type RankingService struct {
	store        ScoredAthleteLister
	storeTimeout time.Duration
	log          *logrus.Logger
	now          func() time.Time
}

func NewRankingService(store ScoredAthleteLister, storeTimeout time.Duration, log *logrus.Logger) *RankingService {
	return &RankingService{
		store:        store,
		storeTimeout: storeTimeout,
		log:          log,
		now:          time.Now,
	}
}

func (s *RankingService) BuildLeaderboard(ctx context.Context) (*models.LeaderboardView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	pairs, err := s.store.ListScoredWithOwner(ctx)
	if err != nil {
		s.log.WithField("backend_error", err.Error()).Error("leaderboard store read failed")
		return nil, fmt.Errorf("listing scored athletes: %w", ErrStoreUnavailable)
	}

	eligible := make([]models.ScoredAthlete, 0, len(pairs))
	for _, pair := range pairs {
		if pair.Athlete.IsPublic && pair.Athlete.ScoreData.IsComplete() {
			eligible = append(eligible, pair)
		}
	}

	s.attachOwnersByEmail(pairs, eligible)
	sortByScore(eligible)
	kept := dedupe(eligible)

	now := s.now()
	entries := make([]models.LeaderboardEntry, 0, len(kept))
	for i, pair := range kept {
		entries = append(entries, models.LeaderboardEntry{
			Rank:           i + 1,
			DisplayName:    resolveDisplayName(pair),
			Score:          *pair.Athlete.ScoreData.HybridScore,
			ScoreBreakdown: pair.Athlete.ScoreData.Breakdown(),
			ProfileID:      pair.Athlete.ID,
			OwningUserID:   owningUserID(pair),
			Age:            resolveAge(pair, now),
			Gender:         resolveGender(pair),
			Country:        resolveCountry(pair),
		})
	}

	return &models.LeaderboardView{
		Leaderboard:         entries,
		Total:               len(entries),
		TotalPublicAthletes: len(entries),
		RankingMetadata:     buildMetadata(kept),
	}, nil
}

// attachOwnersByEmail resolves orphan profiles against user records seen
// elsewhere in the listing: an orphan whose profile email matches a known
// user's email adopts that user for deduplication and name resolution.
func (s *RankingService) attachOwnersByEmail(all, eligible []models.ScoredAthlete) {
	byEmail := make(map[string]*models.UserProfile)
	for _, pair := range all {
		if pair.Owner == nil || pair.Owner.Email == nil {
			continue
		}
		if key := normalizeKey(*pair.Owner.Email); key != "" {
			byEmail[key] = pair.Owner
		}
	}
	for i := range eligible {
		if eligible[i].Owner != nil {
			continue
		}
		email := eligible[i].Athlete.ProfileJSON.Email
		if email == nil {
			continue
		}
		if owner, ok := byEmail[normalizeKey(*email)]; ok {
			eligible[i].Owner = owner
		}
	}
}

// sortByScore orders by hybrid score descending, ties broken by
// updated_at descending, further ties by id ascending. This tuple is the
// deterministic ordering contract.
func sortByScore(pairs []models.ScoredAthlete) {
	sort.SliceStable(pairs, func(i, j int) bool {
		a, b := pairs[i], pairs[j]
		as, bs := *a.Athlete.ScoreData.HybridScore, *b.Athlete.ScoreData.HybridScore
		if as != bs {
			return as > bs
		}
		if !a.Athlete.UpdatedAt.Equal(b.Athlete.UpdatedAt) {
			return a.Athlete.UpdatedAt.After(b.Athlete.UpdatedAt)
		}
		return a.Athlete.ID.String() < b.Athlete.ID.String()
	})
}

// dedupe collapses profiles that belong to the same person. Input must
// already be sorted descending, so the first occurrence of a key is the
// person's highest-scoring profile. Keys, in priority: the owning user
// id; the normalised email; for unowned profiles only, the normalised
// display name. Owned profiles never cross-match on name: two distinct
// users may legitimately share one. A profile with no key at all is its
// own entry and never deduplicates.
func dedupe(pairs []models.ScoredAthlete) []models.ScoredAthlete {
	seen := make(map[string]struct{})
	kept := make([]models.ScoredAthlete, 0, len(pairs))

	for _, pair := range pairs {
		keys := dedupKeys(pair)
		duplicate := false
		for _, key := range keys {
			if _, ok := seen[key]; ok {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		for _, key := range keys {
			seen[key] = struct{}{}
		}
		kept = append(kept, pair)
	}
	return kept
}

func dedupKeys(pair models.ScoredAthlete) []string {
	var keys []string
	owner := owningUserID(pair)
	if owner != nil {
		keys = append(keys, "user:"+*owner)
	}

	email := firstText(ownerEmail(pair), pair.Athlete.ProfileJSON.Email)
	if key := normalizeKey(email); key != "" {
		keys = append(keys, "email:"+key)
	} else if owner == nil {
		if key := normalizeKey(cleanText(pair.Athlete.ProfileJSON.DisplayName)); key != "" {
			keys = append(keys, "name:"+key)
		}
	}
	return keys
}

// resolveDisplayName walks the documented fallback chain: owner display
// name, owner name, owner first+last, profile display name, profile
// first+last, profile first name, email local part, "Anonymous".
func resolveDisplayName(pair models.ScoredAthlete) string {
	if owner := pair.Owner; owner != nil {
		if s := cleanText(owner.DisplayName); s != "" {
			return s
		}
		if s := cleanText(owner.Name); s != "" {
			return s
		}
		if s := joinName(owner.FirstName, owner.LastName); s != "" {
			return s
		}
	}

	pj := pair.Athlete.ProfileJSON
	if s := cleanText(pj.DisplayName); s != "" {
		return s
	}
	if s := joinName(pj.FirstName, pj.LastName); s != "" {
		return s
	}
	if email := firstText(ownerEmail(pair), pj.Email); email != "" {
		if local := strings.TrimSpace(strings.SplitN(email, "@", 2)[0]); local != "" {
			return local
		}
	}
	return "Anonymous"
}

// joinName joins with a single space and never emits a trailing or
// leading gap when one side is missing.
func joinName(first, last *string) string {
	f := cleanText(first)
	l := cleanText(last)
	switch {
	case f != "" && l != "":
		return f + " " + l
	case f != "":
		return f
	default:
		return l
	}
}

func resolveAge(pair models.ScoredAthlete, now time.Time) *int {
	if pair.Owner == nil || pair.Owner.DateOfBirth == nil {
		return nil
	}
	dob := *pair.Owner.DateOfBirth
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return nil
	}
	return &age
}

func resolveGender(pair models.ScoredAthlete) *string {
	raw := ""
	if pair.Owner != nil && pair.Owner.Gender != nil {
		raw = *pair.Owner.Gender
	} else if pair.Athlete.ProfileJSON.Sex != nil {
		raw = *pair.Athlete.ProfileJSON.Sex
	}
	g := strings.ToLower(strings.TrimSpace(raw))
	if g == "" {
		return nil
	}
	return &g
}

func resolveCountry(pair models.ScoredAthlete) *string {
	if pair.Owner != nil {
		if c := cleanText(pair.Owner.Country); c != "" {
			return &c
		}
	}
	if c := cleanText(pair.Athlete.ProfileJSON.Country); c != "" {
		return &c
	}
	return nil
}

func buildMetadata(kept []models.ScoredAthlete) models.RankingMetadata {
	meta := models.RankingMetadata{Count: len(kept)}
	if len(kept) == 0 {
		return meta
	}

	scores := make([]float64, 0, len(kept))
	var last time.Time
	for _, pair := range kept {
		scores = append(scores, *pair.Athlete.ScoreData.HybridScore)
		if pair.Athlete.UpdatedAt.After(last) {
			last = pair.Athlete.UpdatedAt
		}
	}

	asc := make([]float64, len(scores))
	copy(asc, scores)
	sort.Float64s(asc)

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	avg := math.Round(sum/float64(len(scores))*10) / 10

	meta.ScoreRange = &models.ScoreRange{Min: asc[0], Max: asc[len(asc)-1]}
	meta.AvgScore = &avg
	meta.PercentileBreakpoints = &models.PercentileBreakpoints{
		P50: percentile(asc, 0.50),
		P75: percentile(asc, 0.75),
		P90: percentile(asc, 0.90),
		P95: percentile(asc, 0.95),
		P99: percentile(asc, 0.99),
	}
	meta.LastUpdated = &last
	return meta
}

// percentile computes a quantile with linear interpolation between order
// statistics. sorted must be ascending and non-empty.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func owningUserID(pair models.ScoredAthlete) *string {
	if pair.Owner != nil {
		id := pair.Owner.UserID
		return &id
	}
	return pair.Athlete.OwningUserID
}

func ownerEmail(pair models.ScoredAthlete) *string {
	if pair.Owner == nil {
		return nil
	}
	return pair.Owner.Email
}

func ownerDisplayName(pair models.ScoredAthlete) *string {
	if pair.Owner == nil {
		return nil
	}
	return pair.Owner.DisplayName
}

func cleanText(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func firstText(vals ...*string) string {
	for _, v := range vals {
		if s := cleanText(v); s != "" {
			return s
		}
	}
	return ""
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

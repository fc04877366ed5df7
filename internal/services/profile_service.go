package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/WavesCapital/Hybrid-House-sub001/internal/models"
	"github.com/WavesCapital/Hybrid-House-sub001/internal/repository"
)

// ErrNotFound is surfaced for writes against an unknown athlete id.
var ErrNotFound = errors.New("not found")

type AthleteProfileStore interface {
	Create(ctx context.Context, input repository.CreateAthleteProfileInput) (*models.AthleteProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.AthleteProfile, error)
	SetScore(ctx context.Context, id uuid.UUID, bundle models.ScoreBundle) error
	SetPrivacy(ctx context.Context, id uuid.UUID, isPublic bool) error
}

type UserProfileStore interface {
	Upsert(ctx context.Context, userID string, patch repository.UserProfilePatch) (*models.UserProfile, error)
	GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
}

type Scorer interface {
	RequestScore(ctx context.Context, profile models.ProfileJSON) (*models.ScoreBundle, error)
}

// ProfileService orchestrates the write path: profile creation, the
// oracle round-trip, score persistence, and privacy flips.
type ProfileService struct {
	athletes     AthleteProfileStore
	users        UserProfileStore
	oracle       Scorer
	storeTimeout time.Duration
	log          *logrus.Logger
}

func NewProfileService(
	athletes AthleteProfileStore,
	users UserProfileStore,
	oracle Scorer,
	storeTimeout time.Duration,
	log *logrus.Logger,
) *ProfileService {
	return &ProfileService{
		athletes:     athletes,
		users:        users,
		oracle:       oracle,
		storeTimeout: storeTimeout,
		log:          log,
	}
}

// SubmitAthleteProfile persists the submission, then asks the oracle for
// a score. An empty or failed oracle response leaves the profile
// scoreless: the submission itself still succeeded, and the two outcomes
// are only distinguishable in diagnostics.
func (s *ProfileService) SubmitAthleteProfile(ctx context.Context, raw map[string]any, owningUserID *string, isPublic bool) (*models.AthleteProfile, error) {
	profile, err := s.createProfile(ctx, raw, owningUserID, isPublic)
	if err != nil {
		return nil, err
	}

	bundle, err := s.oracle.RequestScore(ctx, profile.ProfileJSON)
	if err != nil {
		entry := s.log.WithField("athlete_id", profile.ID)
		switch {
		case errors.Is(err, ErrOracleEmpty):
			entry.Warn("score request issued but no score received")
		case errors.Is(err, ErrOracleUnavailable):
			entry.Warn("score oracle unavailable, profile stored without score")
		default:
			entry.WithError(err).Error("score request failed")
		}
		return profile, nil
	}

	if err := s.RecordScore(ctx, profile.ID, *bundle); err != nil {
		s.log.WithError(err).WithField("athlete_id", profile.ID).Error("persisting score failed")
		return profile, nil
	}
	profile.ScoreData = bundle
	return profile, nil
}

func (s *ProfileService) createProfile(ctx context.Context, raw map[string]any, owningUserID *string, isPublic bool) (*models.AthleteProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	return s.athletes.Create(ctx, repository.CreateAthleteProfileInput{
		Raw:          raw,
		OwningUserID: owningUserID,
		IsPublic:     isPublic,
	})
}

// RecordScore is the oracle-callback write.
func (s *ProfileService) RecordScore(ctx context.Context, id uuid.UUID, bundle models.ScoreBundle) error {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	err := s.athletes.SetScore(ctx, id, bundle)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *ProfileService) SetPrivacy(ctx context.Context, id uuid.UUID, isPublic bool) error {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	err := s.athletes.SetPrivacy(ctx, id, isPublic)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// GetAthleteDetail assembles the share-link view: the stored profile, its
// score bundle, and the resolved owning user. Private profiles are served
// too; privacy is not enforced on this surface.
func (s *ProfileService) GetAthleteDetail(ctx context.Context, id uuid.UUID) (*models.AthleteProfileDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	profile, err := s.athletes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}

	detail := &models.AthleteProfileDetail{
		ProfileID:   profile.ID,
		ProfileJSON: profile.ProfileJSON,
		ScoreData:   profile.ScoreData,
	}
	if profile.OwningUserID != nil {
		owner, err := s.users.GetByUserID(ctx, *profile.OwningUserID)
		if err != nil {
			return nil, err
		}
		detail.UserProfile = owner
	}
	return detail, nil
}

func (s *ProfileService) UpsertUserProfile(ctx context.Context, userID string, patch repository.UserProfilePatch) (*models.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	return s.users.Upsert(ctx, userID, patch)
}

func (s *ProfileService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	return s.users.GetByUserID(ctx, userID)
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/WavesCapital/Hybrid-House-sub001/internal/coerce"
	"github.com/WavesCapital/Hybrid-House-sub001/internal/models"
)

const (
	pgUndefinedColumn    = "42703"
	pgForeignKeyViolated = "23503"
)

// ErrInvalidOwner means the submitted owning_user_id references no
// user_profiles row. Orphan profiles are valid; dangling links are not.
var ErrInvalidOwner = errors.New("owning user does not exist")

type CreateAthleteProfileInput struct {
	Raw          map[string]any
	OwningUserID *string
	IsPublic     bool
}

type AthleteProfileRepository struct {
	db  DBTX
	log *logrus.Logger
}

func NewAthleteProfileRepository(db DBTX, log *logrus.Logger) *AthleteProfileRepository {
	return &AthleteProfileRepository{db: db, log: log}
}

// Create normalises the submitted payload through the value coercers and
// persists the already-normalised record, so the stored profile_json
// carries consistent _seconds twins from the start.
func (r *AthleteProfileRepository) Create(ctx context.Context, input CreateAthleteProfileInput) (*models.AthleteProfile, error) {
	normalized := coerce.NormalizeProfile(input.Raw)
	blob, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("encoding profile_json: %w", err)
	}

	query := `
		INSERT INTO athlete_profiles (id, owning_user_id, profile_json, is_public)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		RETURNING created_at, updated_at
	`

	profile := models.AthleteProfile{
		ID:           uuid.New(),
		OwningUserID: input.OwningUserID,
		ProfileJSON:  normalized,
		IsPublic:     input.IsPublic,
	}
	err = r.db.QueryRow(ctx, query,
		profile.ID,
		input.OwningUserID,
		blob,
		input.IsPublic,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolated {
			return nil, ErrInvalidOwner
		}
		return nil, err
	}
	return &profile, nil
}

func (r *AthleteProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AthleteProfile, error) {
	query := `
		SELECT id, owning_user_id, profile_json, score_data, is_public, created_at, updated_at
		FROM athlete_profiles
		WHERE id = $1
	`

	var (
		profile     models.AthleteProfile
		profileBlob []byte
		scoreBlob   []byte
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.OwningUserID,
		&profileBlob,
		&scoreBlob,
		&profile.IsPublic,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(profileBlob, &profile.ProfileJSON); err != nil {
		return nil, fmt.Errorf("decoding profile_json for %s: %w", id, err)
	}
	if len(scoreBlob) > 0 {
		var bundle models.ScoreBundle
		if err := json.Unmarshal(scoreBlob, &bundle); err != nil {
			return nil, fmt.Errorf("decoding score_data for %s: %w", id, err)
		}
		profile.ScoreData = &bundle
	}
	return &profile, nil
}

// SetScore writes the bundle and bumps updated_at. The first attempt also
// splits the bundle into dedicated score columns; if the backend rejects
// that with undefined_column, it retries once storing the bundle only as
// the jsonb blob. The fallback is a contract: callers see the same
// success either way.
func (r *AthleteProfileRepository) SetScore(ctx context.Context, id uuid.UUID, bundle models.ScoreBundle) error {
	blob, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("encoding score bundle: %w", err)
	}

	split := `
		UPDATE athlete_profiles
		SET score_data = $2,
			hybrid_score = $3,
			strength_score = $4,
			speed_score = $5,
			vo2_score = $6,
			distance_score = $7,
			volume_score = $8,
			recovery_score = $9,
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, split, id, blob,
		bundle.HybridScore,
		bundle.StrengthScore,
		bundle.SpeedScore,
		bundle.VO2Score,
		bundle.DistanceScore,
		bundle.VolumeScore,
		bundle.RecoveryScore,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != pgUndefinedColumn {
			return err
		}
		r.log.WithFields(logrus.Fields{
			"athlete_id": id,
			"column":     pgErr.ColumnName,
		}).Debug("score columns missing, storing bundle as blob")

		fallback := `
			UPDATE athlete_profiles
			SET score_data = $2, updated_at = NOW()
			WHERE id = $1
		`
		tag, err = r.db.Exec(ctx, fallback, id, blob)
		if err != nil {
			return err
		}
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AthleteProfileRepository) SetPrivacy(ctx context.Context, id uuid.UUID, isPublic bool) error {
	query := `UPDATE athlete_profiles SET is_public = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, isPublic)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListScored returns every athlete whose stored bundle is complete.
// Order unspecified.
func (r *AthleteProfileRepository) ListScored(ctx context.Context) ([]models.AthleteProfile, error) {
	pairs, err := r.ListScoredWithOwner(ctx)
	if err != nil {
		return nil, err
	}
	athletes := make([]models.AthleteProfile, 0, len(pairs))
	for _, pair := range pairs {
		athletes = append(athletes, pair.Athlete)
	}
	return athletes, nil
}

// ListScoredWithOwner pairs each completely scored athlete with its
// owning user profile when the relation resolves. Rows whose stored
// blobs fail to decode are skipped with a warning; one corrupt profile
// must not take the whole leaderboard down.
func (r *AthleteProfileRepository) ListScoredWithOwner(ctx context.Context) ([]models.ScoredAthlete, error) {
	query := `
		SELECT a.id, a.owning_user_id, a.profile_json, a.score_data, a.is_public, a.created_at, a.updated_at,
			   u.user_id, u.email, u.display_name, u.name, u.first_name, u.last_name,
			   u.date_of_birth, u.gender, u.country, u.height_in, u.weight_lb,
			   COALESCE(u.wearables, '{}'), u.created_at, u.updated_at
		FROM athlete_profiles a
		LEFT JOIN user_profiles u ON u.user_id = a.owning_user_id
		WHERE a.score_data IS NOT NULL
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.ScoredAthlete
	for rows.Next() {
		var (
			athlete     models.AthleteProfile
			profileBlob []byte
			scoreBlob   []byte
			owner       models.UserProfile
			ownerID     *string

			ownerCreatedAt *time.Time
			ownerUpdatedAt *time.Time
		)
		err := rows.Scan(
			&athlete.ID,
			&athlete.OwningUserID,
			&profileBlob,
			&scoreBlob,
			&athlete.IsPublic,
			&athlete.CreatedAt,
			&athlete.UpdatedAt,
			&ownerID,
			&owner.Email,
			&owner.DisplayName,
			&owner.Name,
			&owner.FirstName,
			&owner.LastName,
			&owner.DateOfBirth,
			&owner.Gender,
			&owner.Country,
			&owner.HeightIn,
			&owner.WeightLb,
			&owner.Wearables,
			&ownerCreatedAt,
			&ownerUpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(profileBlob, &athlete.ProfileJSON); err != nil {
			r.log.WithError(err).WithField("athlete_id", athlete.ID).Warn("skipping athlete with corrupt profile_json")
			continue
		}
		var bundle models.ScoreBundle
		if err := json.Unmarshal(scoreBlob, &bundle); err != nil {
			r.log.WithError(err).WithField("athlete_id", athlete.ID).Warn("skipping athlete with corrupt score_data")
			continue
		}
		if !bundle.IsComplete() {
			continue
		}
		athlete.ScoreData = &bundle

		pair := models.ScoredAthlete{Athlete: athlete}
		if ownerID != nil {
			owner.UserID = *ownerID
			if ownerCreatedAt != nil {
				owner.CreatedAt = *ownerCreatedAt
			}
			if ownerUpdatedAt != nil {
				owner.UpdatedAt = *ownerUpdatedAt
			}
			pair.Owner = &owner
		}
		result = append(result, pair)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

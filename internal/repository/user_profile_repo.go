package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/WavesCapital/Hybrid-House-sub001/internal/models"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ErrNotFound is returned by writes that target a row that does not
// exist. Reads return (nil, nil) instead.
var ErrNotFound = errors.New("row not found")

// UserProfilePatch is a partial update. A nil field preserves the stored
// value; a pointer to the empty string clears the column. Dates arrive
// pre-parsed, so clearing one is signalled by ClearDateOfBirth instead
// of a sentinel value.
type UserProfilePatch struct {
	Email            *string
	DisplayName      *string
	Name             *string
	FirstName        *string
	LastName         *string
	DateOfBirth      *time.Time
	ClearDateOfBirth bool
	Gender           *string
	Country          *string
	HeightIn         *float64
	WeightLb         *float64
	Wearables        *[]string
}

type UserProfileRepository struct {
	db DBTX
}

func NewUserProfileRepository(db DBTX) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

const userProfileColumns = `user_id, email, display_name, name, first_name, last_name,
	   date_of_birth, gender, country, height_in, weight_lb, wearables, created_at, updated_at`

func (r *UserProfileRepository) Upsert(ctx context.Context, userID string, patch UserProfilePatch) (*models.UserProfile, error) {
	query := `
		INSERT INTO user_profiles (
			user_id, email, display_name, name, first_name, last_name,
			date_of_birth, gender, country, height_in, weight_lb, wearables
		) VALUES (
			$1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''),
			$7, NULLIF($8, ''), NULLIF($9, ''), $10, $11, COALESCE($12::text[], '{}')
		)
		ON CONFLICT (user_id) DO UPDATE SET
			email = CASE WHEN $2::text IS NULL THEN user_profiles.email WHEN $2 = '' THEN NULL ELSE $2 END,
			display_name = CASE WHEN $3::text IS NULL THEN user_profiles.display_name WHEN $3 = '' THEN NULL ELSE $3 END,
			name = CASE WHEN $4::text IS NULL THEN user_profiles.name WHEN $4 = '' THEN NULL ELSE $4 END,
			first_name = CASE WHEN $5::text IS NULL THEN user_profiles.first_name WHEN $5 = '' THEN NULL ELSE $5 END,
			last_name = CASE WHEN $6::text IS NULL THEN user_profiles.last_name WHEN $6 = '' THEN NULL ELSE $6 END,
			date_of_birth = CASE WHEN $13 THEN NULL ELSE COALESCE($7, user_profiles.date_of_birth) END,
			gender = CASE WHEN $8::text IS NULL THEN user_profiles.gender WHEN $8 = '' THEN NULL ELSE $8 END,
			country = CASE WHEN $9::text IS NULL THEN user_profiles.country WHEN $9 = '' THEN NULL ELSE $9 END,
			height_in = COALESCE($10, user_profiles.height_in),
			weight_lb = COALESCE($11, user_profiles.weight_lb),
			wearables = COALESCE($12::text[], user_profiles.wearables),
			updated_at = NOW()
		RETURNING ` + userProfileColumns

	var wearables any
	if patch.Wearables != nil {
		wearables = *patch.Wearables
	}

	var profile models.UserProfile
	err := r.db.QueryRow(ctx, query,
		userID,
		patch.Email,
		patch.DisplayName,
		patch.Name,
		patch.FirstName,
		patch.LastName,
		patch.DateOfBirth,
		patch.Gender,
		patch.Country,
		patch.HeightIn,
		patch.WeightLb,
		wearables,
		patch.ClearDateOfBirth,
	).Scan(
		&profile.UserID,
		&profile.Email,
		&profile.DisplayName,
		&profile.Name,
		&profile.FirstName,
		&profile.LastName,
		&profile.DateOfBirth,
		&profile.Gender,
		&profile.Country,
		&profile.HeightIn,
		&profile.WeightLb,
		&profile.Wearables,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *UserProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	query := `SELECT ` + userProfileColumns + ` FROM user_profiles WHERE user_id = $1`

	var profile models.UserProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Email,
		&profile.DisplayName,
		&profile.Name,
		&profile.FirstName,
		&profile.LastName,
		&profile.DateOfBirth,
		&profile.Gender,
		&profile.Country,
		&profile.HeightIn,
		&profile.WeightLb,
		&profile.Wearables,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

package models

import "time"

// UserProfile is the demographic/identity row for a registered user.
// Nullable columns are pointers so absent values serialise as explicit
// JSON null rather than being omitted.
type UserProfile struct {
	UserID      string     `json:"user_id"`
	Email       *string    `json:"email"`
	DisplayName *string    `json:"display_name"`
	Name        *string    `json:"name"`
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender"`
	Country     *string    `json:"country"`
	HeightIn    *float64   `json:"height_in"`
	WeightLb    *float64   `json:"weight_lb"`
	Wearables   []string   `json:"wearables"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

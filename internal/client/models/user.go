package models

// UserInfo identifies an authenticated user.
type UserInfo struct {
	ID       int     `json:"id"`
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// AuthData is the payload of login and register.
type AuthData struct {
	User *UserInfo `json:"user"`
}

// Profile is the user's personal and biometric information.
type Profile struct {
	UserID      int      `json:"user_id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Phone       *string  `json:"phone,omitempty"`
	Height      *float64 `json:"height,omitempty"`
	Weight      *float64 `json:"current_weight,omitempty"`
	DateOfBirth *string  `json:"date_of_birth,omitempty"`
	Age         *int     `json:"age,omitempty"`
	Gender      *string  `json:"gender,omitempty"`
	Photo       *string  `json:"photo,omitempty"`
}

// HasBodyMetrics reports whether both weight and height are present and
// positive.
func (p *Profile) HasBodyMetrics() bool {
	return p != nil &&
		p.Weight != nil && *p.Weight > 0 &&
		p.Height != nil && *p.Height > 0
}

// ProfileData wraps a profile in responses.
type ProfileData struct {
	Profile *Profile `json:"profile"`
}

// ProfileUpdate carries the editable profile fields. Nil fields are left
// untouched by the backend.
type ProfileUpdate struct {
	Height      *float64 `validate:"omitempty,gt=0"`
	Weight      *float64 `validate:"omitempty,gt=0"`
	DateOfBirth *string  `validate:"omitempty,datetime=2006-01-02"`
	Gender      *string
	Phone       *string
}

package packets

import "time"

type Location struct {
	City      *string  `json:"city"`
	Country   *string  `json:"country"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type Preferences struct {
	CalculationMethod string `json:"calculationMethod"`
	Madhab            string `json:"madhab"`
	Language          string `json:"language"`
}

// returned for profile endpoints
type ProfileResponse struct {
	ID          int         `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	FullName    string      `json:"fullName"`
	AvatarURL   *string     `json:"avatarUrl"`
	Preferences Preferences `json:"preferences"`
	Location    Location    `json:"location"`
	LastLogin   *time.Time  `json:"lastLogin"`
	CreatedAt   string      `json:"createdAt"`
	UpdatedAt   string      `json:"updatedAt"`
}

type TokenResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    ProfileResponse `json:"user"`
}

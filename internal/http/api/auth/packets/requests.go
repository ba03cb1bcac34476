package packets

// body for registering
type SignupRequest struct {
	Username  string `json:"username"  binding:"required,min=3,max=30,username"`
	Email     string `json:"email"     binding:"required,email"`
	Password  string `json:"password"  binding:"required,min=8,password"`
	FirstName string `json:"firstName" binding:"required,min=2,max=50"`
	LastName  string `json:"lastName"  binding:"required,min=2,max=50"`
}

// body for logging in
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LocationRequest struct {
	City      *string  `json:"city"      binding:"omitempty,max=100"`
	Country   *string  `json:"country"   binding:"omitempty,max=100"`
	Latitude  *float64 `json:"latitude"  binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

type PreferencesRequest struct {
	CalculationMethod string `json:"calculationMethod" binding:"omitempty,calcmethod"`
	Madhab            string `json:"madhab"            binding:"omitempty,oneof=hanafi shafi maliki hanbali"`
	Language          string `json:"language"          binding:"omitempty,min=2,max=5"`
}

// fields left out keep their current value
type UpdateProfileRequest struct {
	FirstName   string              `json:"firstName"   binding:"omitempty,min=2,max=50"`
	LastName    string              `json:"lastName"    binding:"omitempty,min=2,max=50"`
	Preferences *PreferencesRequest `json:"preferences"`
	Location    *LocationRequest    `json:"location"`
}

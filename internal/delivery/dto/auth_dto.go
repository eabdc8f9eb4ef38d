package dto

// Request DTOs

// LoginRequest accepts either the email or the username.
type LoginRequest struct {
	Email    string `json:"email" validate:"required_without=Username,omitempty,email"`
	Username string `json:"username" validate:"required_without=Email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AdminSignupRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Username string `json:"username" validate:"required,min=3,max=150"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Phone    string `json:"phone" validate:"required,numeric,min=7,max=20"`
	Gender   string `json:"gender" validate:"omitempty,oneof=male female"`
	Age      int    `json:"age" validate:"omitempty,gte=18,lte=120"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type UpdateProfileRequest struct {
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Username *string `json:"username" validate:"omitempty,min=3,max=150"`
	Name     *string `json:"name" validate:"omitempty,min=2,max=255"`
	Phone    *string `json:"phone" validate:"omitempty,numeric,min=7,max=20"`
	Gender   *string `json:"gender" validate:"omitempty,oneof=male female"`
	Age      *int    `json:"age" validate:"omitempty,gte=0,lte=120"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetVerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type PasswordResetConfirmRequest struct {
	Email    string `json:"email" validate:"required,email"`
	OTP      string `json:"otp" validate:"required,len=6,numeric"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}

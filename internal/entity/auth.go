package entity

// AuthRegisterRequest is the registration request payload. Field rules
// mirror the account constraints: username 3-50 chars, email must
// contain "@", password at least 6 chars, phone optional.
type AuthRegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,contains=@"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

// AuthLoginRequest is the login request payload.
type AuthLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned after successful login/registration.
type AuthResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

// BalanceResponse is returned by the balance endpoint.
type BalanceResponse struct {
	Message  string  `json:"message"`
	Balance  float64 `json:"balance"`
	Username string  `json:"username"`
}

// ProfileResponse wraps the profile payload.
type ProfileResponse struct {
	User UserProfile `json:"user"`
}

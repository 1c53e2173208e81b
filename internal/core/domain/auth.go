package domain

// RegisterRequest represents a registration attempt
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse is returned after successful registration
type RegisterResponse struct {
	UserID string `json:"user_id"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful authentication
type LoginResponse struct {
	Token string `json:"token"`
}

// TokenClaims is the session token payload. It is built at issuance,
// reconstructed at validation, and never persisted.
type TokenClaims struct {
	Subject   string `json:"sub"`
	Issuer    string `json:"iss"`
	ExpiresAt int64  `json:"exp"`
}

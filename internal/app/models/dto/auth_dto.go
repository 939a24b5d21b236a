package dto

// RegisterRequest represents a new account registration
type RegisterRequest struct {
	Username        string `json:"username" binding:"required" example:"jdoe"`
	Password        string `json:"password" binding:"required,min=8" example:"s3cretpass"`
	ConfirmPassword string `json:"confirmPassword" binding:"required" example:"s3cretpass"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"jdoe"`
	Password string `json:"password" binding:"required" example:"s3cretpass"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest revokes a refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType" example:"Bearer"`
	ExpiresIn    int    `json:"expiresIn" example:"3600"`
}

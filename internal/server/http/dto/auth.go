package dto

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token and the account it belongs to.
type AuthResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
	Login  string `json:"login"`
	Role   string `json:"role"`
}

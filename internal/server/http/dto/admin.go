package dto

// AdminLoginRequest authenticates the admin dashboard.
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// SetBalanceRequest overwrites one currency amount for a user.
type SetBalanceRequest struct {
	Currency string  `json:"currency" binding:"required"`
	Amount   float64 `json:"amount"`
}

// AddPointsRequest shifts a user's points counter.
type AddPointsRequest struct {
	Delta int64 `json:"delta"`
}

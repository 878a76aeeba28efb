package dto

import "github.com/minedash/minedash/internal/reward"

// ConvertRequest exchanges points for CATI.
type ConvertRequest struct {
	Points int64 `json:"points"`
}

// PackResponse is one purchasable reward pack.
type PackResponse struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Cost       int64   `json:"cost"`
	TON        float64 `json:"ton"`
	CATI       float64 `json:"cati"`
	USDT       float64 `json:"usdt"`
	GiftPoints int64   `json:"giftPoints"`
}

// NewPackResponse maps a reward pack to its wire shape.
func NewPackResponse(p reward.Pack) PackResponse {
	return PackResponse{
		ID:         p.ID,
		Name:       p.Name,
		Cost:       p.Cost,
		TON:        p.TON,
		CATI:       p.CATI,
		USDT:       p.USDT,
		GiftPoints: p.GiftPoints,
	}
}

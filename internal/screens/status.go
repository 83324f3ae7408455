package screens

type SeatCategory string

const (
	CategoryNormal  SeatCategory = "NORMAL"
	CategoryPremium SeatCategory = "PREMIUM"
	CategoryVIP     SeatCategory = "VIP"
)

func IsValidCategory(category string) bool {
	switch SeatCategory(category) {
	case CategoryNormal, CategoryPremium, CategoryVIP:
		return true
	default:
		return false
	}
}

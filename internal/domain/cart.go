package domain

// CartLine is one pending-purchase line. Price is a snapshot taken at
// add time and is not refreshed when the product changes. One line
// exists per product id; re-adding merges by incrementing Quantity.
type CartLine struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// SavedItem is a lightweight wishlist snapshot. Duplicates are allowed.
type SavedItem struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// CartUnits returns the total unit count across all lines.
func CartUnits(lines []CartLine) int {
	var total int
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

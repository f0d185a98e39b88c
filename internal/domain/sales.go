package domain

// SalesRecord accumulates units sold and revenue for one product.
// Records are created lazily on first sale and only removed together
// with their product.
type SalesRecord struct {
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// SalesMap is the sales aggregate keyed by product id. Integer keys
// serialize as decimal strings, matching the legacy persisted form.
type SalesMap map[int64]SalesRecord

// TotalRevenue sums revenue across every record, dangling ones
// included.
func (m SalesMap) TotalRevenue() float64 {
	var sum float64
	for _, r := range m {
		sum += r.Revenue
	}
	return sum
}

// TotalUnits sums units sold across every record.
func (m SalesMap) TotalUnits() int {
	var sum int
	for _, r := range m {
		sum += r.Quantity
	}
	return sum
}

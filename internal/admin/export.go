package admin

import (
	"io"
	"sort"

	"github.com/gocarina/gocsv"
)

// productExportRow is the CSV projection of a product joined with its
// sales record.
type productExportRow struct {
	ID            int64   `csv:"id"`
	Name          string  `csv:"name"`
	Category      string  `csv:"category"`
	Price         float64 `csv:"price"`
	OriginalPrice string  `csv:"original_price"`
	Rating        float64 `csv:"rating"`
	Reviews       int     `csv:"reviews"`
	Badge         string  `csv:"badge"`
	Sold          int     `csv:"sold"`
	Revenue       float64 `csv:"revenue"`
}

type salesExportRow struct {
	ProductID int64   `csv:"product_id"`
	Name      string  `csv:"name"`
	Quantity  int     `csv:"quantity"`
	Revenue   float64 `csv:"revenue"`
}

// ExportProductsCSV writes the catalog, one row per product with its
// cumulative sales, in id order.
func (c *Controller) ExportProductsCSV(w io.Writer) error {
	products := c.store.Products()
	sales := c.store.Sales()

	rows := make([]productExportRow, 0, len(products))
	for _, p := range products {
		rec := sales[p.ID]
		row := productExportRow{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Price:    p.Price,
			Rating:   p.Rating,
			Reviews:  p.Reviews,
			Badge:    p.Badge,
			Sold:     rec.Quantity,
			Revenue:  rec.Revenue,
		}
		if p.OriginalPrice != nil {
			row.OriginalPrice = FormatPrice(*p.OriginalPrice)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return gocsv.Marshal(&rows, w)
}

// ExportSalesCSV writes the sales aggregate in product-id order.
// Dangling records keep an empty name so totals stay auditable.
func (c *Controller) ExportSalesCSV(w io.Writer) error {
	products := c.store.Products()
	sales := c.store.Sales()

	byID := make(map[int64]string, len(products))
	for _, p := range products {
		byID[p.ID] = p.Name
	}

	ids := make([]int64, 0, len(sales))
	for id := range sales {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows := make([]salesExportRow, 0, len(ids))
	for _, id := range ids {
		rec := sales[id]
		rows = append(rows, salesExportRow{
			ProductID: id,
			Name:      byID[id],
			Quantity:  rec.Quantity,
			Revenue:   rec.Revenue,
		})
	}
	return gocsv.Marshal(&rows, w)
}

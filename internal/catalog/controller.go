package catalog

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/lumenlabs/webmart/internal/domain"
	"github.com/lumenlabs/webmart/internal/notify"
	"github.com/lumenlabs/webmart/internal/store"
)

// Sort keys accepted by the browse pipeline. Anything else sorts by
// name ascending.
const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortPopular   = "popular"
	SortName      = "name"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// Quantity stepper bounds.
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// Query is the shopper's current filter/sort selection. The displayed
// subset is recomputed whenever any of the three inputs changes.
type Query struct {
	Category string `json:"category" query:"category"`
	Search   string `json:"search" query:"search"`
	Sort     string `json:"sort" query:"sort"`
}

// Tile is the product grid view model for shoppers.
type Tile struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         string     `json:"price"`
	OriginalPrice string     `json:"original_price,omitempty"`
	Image         string     `json:"image"`
	Badge         string     `json:"badge,omitempty"`
	Rating        float64    `json:"rating"`
	Reviews       int        `json:"reviews"`
	Stars         StarRating `json:"stars"`
}

// Detail is the open detail view model.
type Detail struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Price         string           `json:"price"`
	OriginalPrice string           `json:"original_price,omitempty"`
	Description   string           `json:"description"`
	Image         string           `json:"image"`
	Rating        float64          `json:"rating"`
	Reviews       int              `json:"reviews"`
	Stars         StarRating       `json:"stars"`
	Specs         domain.SpecList  `json:"specs"`
	Quantity      int              `json:"quantity"`
}

// Controller drives the shopper-facing catalog page: browsing,
// the detail view state machine and purchasing. The detail view has
// exactly two states, closed and open-on-a-product.
type Controller struct {
	store    *store.CatalogStore
	notifier *notify.Notifier

	mu       sync.Mutex
	detailID int64 // 0 while closed
	quantity int
}

func NewController(st *store.CatalogStore, n *notify.Notifier) *Controller {
	return &Controller{store: st, notifier: n}
}

// Browse applies the filter/sort pipeline: category and search first,
// then a stable sort by the requested key. Filtering never reorders;
// the relative order entering the sort is the stored order.
func (c *Controller) Browse(q Query) []Tile {
	products := c.store.Products()

	term := strings.ToLower(q.Search)
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if q.Category != "" && q.Category != CategoryAll && p.Category != q.Category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch q.Sort {
	case SortPriceLow:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case SortPriceHigh:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	case SortPopular:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Reviews > filtered[j].Reviews })
	default:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Name < filtered[j].Name })
	}

	tiles := make([]Tile, 0, len(filtered))
	for _, p := range filtered {
		tiles = append(tiles, tileOf(p))
	}
	return tiles
}

func tileOf(p domain.Product) Tile {
	t := Tile{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       FormatPrice(p.Price),
		Image:       p.Image,
		Badge:       p.Badge,
		Rating:      p.Rating,
		Reviews:     p.Reviews,
		Stars:       Stars(p.Rating),
	}
	if p.Discounted() {
		t.OriginalPrice = FormatPrice(*p.OriginalPrice)
	}
	return t
}

// OpenDetail moves the view to the open state bound to a product and
// resets the quantity selector to 1.
func (c *Controller) OpenDetail(id int64) (Detail, bool) {
	p, ok := c.store.Get(id)
	if !ok {
		return Detail{}, false
	}
	c.mu.Lock()
	c.detailID = id
	c.quantity = MinQuantity
	c.mu.Unlock()
	return c.detailOf(p), true
}

// CloseDetail returns the view to the closed state, from any path:
// overlay, close button, escape, or a completed purchase.
func (c *Controller) CloseDetail() {
	c.mu.Lock()
	c.detailID = 0
	c.quantity = 0
	c.mu.Unlock()
}

// Detail returns the currently open view, if any.
func (c *Controller) Detail() (Detail, bool) {
	c.mu.Lock()
	id := c.detailID
	c.mu.Unlock()
	if id == 0 {
		return Detail{}, false
	}
	p, ok := c.store.Get(id)
	if !ok {
		return Detail{}, false
	}
	return c.detailOf(p), true
}

func (c *Controller) detailOf(p domain.Product) Detail {
	c.mu.Lock()
	qty := c.quantity
	c.mu.Unlock()
	d := Detail{
		ID:          p.ID,
		Name:        p.Name,
		Price:       FormatPrice(p.Price),
		Description: p.LongDescription(),
		Image:       p.Image,
		Rating:      p.Rating,
		Reviews:     p.Reviews,
		Stars:       Stars(p.Rating),
		Specs:       p.Specs,
		Quantity:    qty,
	}
	if p.Discounted() {
		d.OriginalPrice = FormatPrice(*p.OriginalPrice)
	}
	return d
}

// Increment steps the quantity up, clamped at the upper bound.
func (c *Controller) Increment() int {
	return c.adjustQuantity(+1)
}

// Decrement steps the quantity down, clamped at the lower bound.
func (c *Controller) Decrement() int {
	return c.adjustQuantity(-1)
}

func (c *Controller) adjustQuantity(delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detailID == 0 {
		return 0
	}
	c.quantity = clampQuantity(c.quantity + delta)
	return c.quantity
}

// SetQuantity assigns the selector directly, clamped to [1, 99].
func (c *Controller) SetQuantity(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detailID == 0 {
		return 0
	}
	c.quantity = clampQuantity(n)
	return c.quantity
}

func clampQuantity(n int) int {
	if n < MinQuantity {
		return MinQuantity
	}
	if n > MaxQuantity {
		return MaxQuantity
	}
	return n
}

// Quantity returns the current selector value, or 0 when closed.
func (c *Controller) Quantity() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quantity
}

// BuyNow commits the open detail view: upserts a cart line (merging by
// incrementing quantity when the product is already in the cart),
// persists the cart, records the sale and closes the view. Returns the
// new total cart unit count.
func (c *Controller) BuyNow() (int, error) {
	c.mu.Lock()
	id := c.detailID
	qty := c.quantity
	c.mu.Unlock()
	if id == 0 {
		return 0, store.ErrNotFound
	}
	p, ok := c.store.Get(id)
	if !ok {
		return 0, store.ErrNotFound
	}

	lines := c.store.Cart()
	merged := false
	for i := range lines {
		if lines[i].ID == id {
			lines[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, domain.CartLine{
			ID:       id,
			Name:     p.Name,
			Price:    p.Price,
			Quantity: qty,
		})
	}
	if err := c.store.SaveCart(lines); err != nil {
		return 0, err
	}
	if err := c.store.TrackSale(id, qty, p.Price); err != nil {
		return 0, err
	}

	total := domain.CartUnits(lines)
	c.notifier.Show("Added to Cart", strconv.Itoa(total)+" items in cart")
	zap.L().Info("buy now",
		zap.Int64("product_id", id),
		zap.Int("quantity", qty),
		zap.Int("cart_units", total))
	c.CloseDetail()
	return total, nil
}

// SaveForLater appends a snapshot of the open product to the saved
// items, duplicates allowed, and closes the view.
func (c *Controller) SaveForLater() error {
	c.mu.Lock()
	id := c.detailID
	c.mu.Unlock()
	if id == 0 {
		return store.ErrNotFound
	}
	p, ok := c.store.Get(id)
	if !ok {
		return store.ErrNotFound
	}

	items := append(c.store.SavedItems(), domain.SavedItem{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Image: p.Image,
	})
	if err := c.store.SaveSavedItems(items); err != nil {
		return err
	}
	c.notifier.Show("Saved", "Item was saved for later")
	zap.L().Info("saved for later", zap.Int64("product_id", id))
	c.CloseDetail()
	return nil
}

// CartCount returns the total unit count across all cart lines.
func (c *Controller) CartCount() int {
	return domain.CartUnits(c.store.Cart())
}

// FormatPrice renders a shopper-facing price. Non-numeric values
// display as zero without being corrected in storage.
func FormatPrice(v interface{}) string {
	return strconv.FormatFloat(cast.ToFloat64(v), 'f', -1, 64)
}

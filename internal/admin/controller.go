package admin

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/lumenlabs/webmart/internal/domain"
	"github.com/lumenlabs/webmart/internal/notify"
	"github.com/lumenlabs/webmart/internal/store"
)

// Placeholder kinds for an empty product grid. An empty catalog and an
// empty search result render differently.
const (
	PlaceholderNone         = ""
	PlaceholderEmptyCatalog = "empty-catalog"
	PlaceholderNoMatch      = "no-match"
)

var ErrConfirmationRequired = errors.New("delete requires confirmation")

// ProductCard is the admin grid view model: one product joined with
// its sales record (zero defaults) and display-coerced numbers.
type ProductCard struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Price         string `json:"price"`
	OriginalPrice string `json:"original_price,omitempty"`
	Description   string `json:"description"`
	Sold          int    `json:"sold"`
	Revenue       string `json:"revenue"`
	Rating        string `json:"rating"`
	Reviews       int    `json:"reviews"`
}

// CardsView is the rendered grid plus the placeholder to show when it
// is empty.
type CardsView struct {
	Cards       []ProductCard `json:"cards"`
	Placeholder string        `json:"placeholder,omitempty"`
}

// TopProduct is the best seller by cumulative quantity.
type TopProduct struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Sold int    `json:"sold"`
}

// Analytics is the sales dashboard view model.
type Analytics struct {
	ProductCount int         `json:"product_count"`
	TotalRevenue float64     `json:"total_revenue"`
	TotalUnits   int         `json:"total_units"`
	TopProduct   *TopProduct `json:"top_product,omitempty"`
}

// Controller drives the admin page: product CRUD, live search and the
// sales dashboard. It holds no collection state of its own; the store
// is the single source of truth.
type Controller struct {
	store    *store.CatalogStore
	notifier *notify.Notifier

	mu      sync.Mutex
	mounted bool
	cached  Analytics
}

func NewController(st *store.CatalogStore, n *notify.Notifier) *Controller {
	return &Controller{store: st, notifier: n}
}

// Mount subscribes the controller to store mutations so an active
// admin view refreshes its analytics when a catalog-side sale lands.
func (c *Controller) Mount() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted {
		return nil
	}
	bus := c.store.Bus()
	if bus == nil {
		return errors.New("no event bus configured")
	}
	if err := bus.Subscribe(store.TopicSalesUpdated, c.refresh); err != nil {
		return err
	}
	if err := bus.Subscribe(store.TopicProductsUpdated, c.refresh); err != nil {
		_ = bus.Unsubscribe(store.TopicSalesUpdated, c.refresh)
		return err
	}
	c.mounted = true
	c.cached = c.computeAnalytics()
	return nil
}

// Unmount removes the subscriptions. A controller that is not mounted
// simply receives no refreshes.
func (c *Controller) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return
	}
	bus := c.store.Bus()
	_ = bus.Unsubscribe(store.TopicSalesUpdated, c.refresh)
	_ = bus.Unsubscribe(store.TopicProductsUpdated, c.refresh)
	c.mounted = false
}

func (c *Controller) refresh() {
	a := c.computeAnalytics()
	c.mu.Lock()
	c.cached = a
	c.mu.Unlock()
}

// CachedAnalytics returns the dashboard as of the last refresh. Only
// meaningful while mounted.
func (c *Controller) CachedAnalytics() Analytics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cached
}

// Cards renders the product grid, restricted by a case-insensitive
// substring search over name, description and category.
func (c *Controller) Cards(search string) CardsView {
	products := c.store.Products()
	sales := c.store.Sales()

	if len(products) == 0 {
		return CardsView{Cards: []ProductCard{}, Placeholder: PlaceholderEmptyCatalog}
	}

	term := strings.ToLower(search)
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) &&
			!strings.Contains(strings.ToLower(p.Category), term) {
			continue
		}
		rec := sales[p.ID]
		card := ProductCard{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			Price:       FormatPrice(p.Price),
			Description: p.Description,
			Sold:        rec.Quantity,
			Revenue:     FormatPrice(rec.Revenue),
			Rating:      formatNumber(p.Rating),
			Reviews:     p.Reviews,
		}
		if p.Discounted() {
			card.OriginalPrice = FormatPrice(*p.OriginalPrice)
		}
		cards = append(cards, card)
	}
	if len(cards) == 0 {
		return CardsView{Cards: cards, Placeholder: PlaceholderNoMatch}
	}
	return CardsView{Cards: cards}
}

// Create validates the form, assigns the next id and appends the
// product.
func (c *Controller) Create(form ProductForm) (domain.Product, error) {
	if err := form.Validate(); err != nil {
		return domain.Product{}, err
	}
	p, err := c.store.Add(form.Product())
	if err != nil {
		return domain.Product{}, err
	}
	c.notifier.Success("Product added successfully!")
	zap.L().Info("product added", zap.Int64("id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// Update shallow-merges the submitted form over the stored product.
// An unknown id is a silent no-op.
func (c *Controller) Update(id int64, form ProductForm) (domain.Product, error) {
	if err := form.Validate(); err != nil {
		return domain.Product{}, err
	}
	p, err := c.store.Update(id, form.Patch())
	if errors.Is(err, store.ErrNotFound) {
		zap.L().Debug("update ignored, unknown product", zap.Int64("id", id))
		return domain.Product{}, err
	}
	if err != nil {
		return domain.Product{}, err
	}
	c.notifier.Success("Product updated successfully!")
	zap.L().Info("product updated", zap.Int64("id", p.ID))
	return p, nil
}

// Delete removes a product and its sales record. It refuses to act
// without explicit confirmation; an unknown id is a silent no-op.
func (c *Controller) Delete(id int64, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	err := c.store.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		zap.L().Debug("delete ignored, unknown product", zap.Int64("id", id))
		return nil
	}
	if err != nil {
		return err
	}
	c.notifier.Success("Product deleted successfully!")
	zap.L().Info("product deleted", zap.Int64("id", id))
	return nil
}

// EditForm returns the form pre-filled from an existing product.
func (c *Controller) EditForm(id int64) (ProductForm, bool) {
	p, ok := c.store.Get(id)
	if !ok {
		return ProductForm{}, false
	}
	return FormFor(p), true
}

// Analytics computes the sales dashboard from the live store.
func (c *Controller) Analytics() Analytics {
	return c.computeAnalytics()
}

func (c *Controller) computeAnalytics() Analytics {
	products := c.store.Products()
	sales := c.store.Sales()

	a := Analytics{
		ProductCount: len(products),
		TotalRevenue: sales.TotalRevenue(),
		TotalUnits:   sales.TotalUnits(),
	}

	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// Highest quantity wins; ties go to the lowest product id. A
	// product with zero sales is never top, and dangling records
	// without a product are skipped.
	ids := make([]int64, 0, len(sales))
	for id := range sales {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		rec := sales[id]
		if rec.Quantity <= 0 {
			continue
		}
		p, ok := byID[id]
		if !ok {
			continue
		}
		if a.TopProduct == nil || rec.Quantity > a.TopProduct.Sold {
			a.TopProduct = &TopProduct{ID: id, Name: p.Name, Sold: rec.Quantity}
		}
	}
	return a
}

// FormatPrice renders a price with two decimals. Anything that fails
// to parse as a number displays as zero; the stored value is never
// corrected.
func FormatPrice(v interface{}) string {
	return strconv.FormatFloat(cast.ToFloat64(v), 'f', 2, 64)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

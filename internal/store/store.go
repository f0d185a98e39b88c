package store

import (
	"strconv"
	"sync"

	"github.com/asaskevich/EventBus"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lumenlabs/webmart/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Mutation topics published on the event bus. A mounted admin view
// subscribes to refresh its analytics when a catalog-side sale lands.
const (
	TopicProductsUpdated = "store.products.updated"
	TopicSalesUpdated    = "store.sales.updated"
	TopicCartUpdated     = "store.cart.updated"
	TopicSavedUpdated    = "store.saved.updated"
)

var ErrNotFound = errors.New("product not found")

// CatalogStore owns the canonical product list, the sales aggregate,
// the cart and the saved-items list. Every mutating operation
// re-serializes the full collection to the backend before returning.
// Malformed or absent persisted data degrades to an empty collection.
//
// Topics are published after the lock is released; subscribers may
// read back from the store.
type CatalogStore struct {
	mu      sync.Mutex
	backend Backend
	bus     EventBus.Bus
	seed    []domain.Product

	products []domain.Product
	sales    domain.SalesMap
	cart     []domain.CartLine
	saved    []domain.SavedItem
	lastID   int64
}

func NewCatalogStore(backend Backend, bus EventBus.Bus) *CatalogStore {
	return &CatalogStore{
		backend: backend,
		bus:     bus,
		seed:    domain.DefaultProducts,
		sales:   domain.SalesMap{},
	}
}

// SetSeed overrides the bundled seed catalog used on first-ever load.
func (s *CatalogStore) SetSeed(seed []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed = seed
}

// Load reads all persisted collections. When no product collection
// exists yet the bundled seed catalog is persisted and used.
func (s *CatalogStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.backend.Get(KeyProducts)
	if err != nil {
		return errors.Wrap(err, "load products")
	}
	switch {
	case raw == nil && len(s.seed) > 0:
		s.products = append([]domain.Product(nil), s.seed...)
		if err := s.persistProducts(); err != nil {
			return err
		}
		zap.L().Info("seeded catalog from bundled defaults",
			zap.Int("products", len(s.products)))
	case raw == nil:
		s.products = []domain.Product{}
	default:
		var products []domain.Product
		if err := json.Unmarshal(raw, &products); err != nil {
			zap.L().Warn("malformed product collection, starting empty", zap.Error(err))
			products = []domain.Product{}
		}
		s.products = products
	}

	s.sales = domain.SalesMap{}
	s.loadJSON(KeySales, &s.sales)
	if s.sales == nil {
		s.sales = domain.SalesMap{}
	}
	s.cart = nil
	s.loadJSON(KeyCart, &s.cart)
	s.saved = nil
	s.loadJSON(KeySavedItems, &s.saved)

	s.lastID = s.maxID()
	if raw, err := s.backend.Get(KeyLastProductID); err == nil && raw != nil {
		if v, err := strconv.ParseInt(string(raw), 10, 64); err == nil && v > s.lastID {
			s.lastID = v
		}
	}
	return nil
}

// loadJSON reads one collection, silently degrading to the zero value
// on absence or malformed content.
func (s *CatalogStore) loadJSON(key string, out interface{}) {
	raw, err := s.backend.Get(key)
	if err != nil || raw == nil {
		return
	}
	if err := json.Unmarshal(raw, out); err != nil {
		zap.L().Warn("malformed persisted collection, starting empty",
			zap.String("key", key), zap.Error(err))
	}
}

func (s *CatalogStore) maxID() int64 {
	var max int64
	for _, p := range s.products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max
}

func (s *CatalogStore) persist(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "serialize %s", key)
	}
	return errors.Wrapf(s.backend.Put(key, data), "persist %s", key)
}

func (s *CatalogStore) persistProducts() error {
	return s.persist(KeyProducts, s.products)
}

func (s *CatalogStore) publish(topics ...string) {
	if s.bus == nil {
		return
	}
	for _, t := range topics {
		s.bus.Publish(t)
	}
}

// Products returns a copy of the catalog.
func (s *CatalogStore) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product(nil), s.products...)
}

// Get returns one product by id.
func (s *CatalogStore) Get(id int64) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Save replaces the full product collection.
func (s *CatalogStore) Save(products []domain.Product) error {
	s.mu.Lock()
	s.products = append([]domain.Product(nil), products...)
	if m := s.maxID(); m > s.lastID {
		s.lastID = m
	}
	err := s.persistProducts()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(TopicProductsUpdated)
	return nil
}

// Sales returns a copy of the sales aggregate map.
func (s *CatalogStore) Sales() domain.SalesMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(domain.SalesMap, len(s.sales))
	for k, v := range s.sales {
		out[k] = v
	}
	return out
}

// SaveSales replaces the full sales aggregate map.
func (s *CatalogStore) SaveSales(sales domain.SalesMap) error {
	s.mu.Lock()
	s.sales = make(domain.SalesMap, len(sales))
	for k, v := range sales {
		s.sales[k] = v
	}
	err := s.persist(KeySales, s.sales)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(TopicSalesUpdated)
	return nil
}

// nextID assigns max(existing)+1, bounded below by the persisted
// high-water mark so deleted ids are never reused.
func (s *CatalogStore) nextID() int64 {
	id := s.maxID() + 1
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	if err := s.backend.Put(KeyLastProductID, []byte(strconv.FormatInt(id, 10))); err != nil {
		zap.L().Warn("failed to persist id high-water mark", zap.Error(err))
	}
	return id
}

// Add assigns the next id, appends the product and persists.
func (s *CatalogStore) Add(p domain.Product) (domain.Product, error) {
	s.mu.Lock()
	p.ID = s.nextID()
	s.products = append(s.products, p)
	err := s.persistProducts()
	s.mu.Unlock()
	if err != nil {
		return domain.Product{}, err
	}
	s.publish(TopicProductsUpdated)
	return p, nil
}

// Update shallow-merges the patch over the stored product: only fields
// present in the patch overwrite, everything else is preserved.
func (s *CatalogStore) Update(id int64, patch ProductPatch) (domain.Product, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.products {
		if s.products[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return domain.Product{}, ErrNotFound
	}
	patch.Apply(&s.products[idx])
	updated := s.products[idx]
	err := s.persistProducts()
	s.mu.Unlock()
	if err != nil {
		return domain.Product{}, err
	}
	s.publish(TopicProductsUpdated)
	return updated, nil
}

// Delete removes the product and its sales record, persisting both
// collections.
func (s *CatalogStore) Delete(id int64) error {
	s.mu.Lock()
	idx := -1
	for i, p := range s.products {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.products = append(s.products[:idx], s.products[idx+1:]...)
	delete(s.sales, id)
	err := s.persistProducts()
	if err == nil {
		err = s.persist(KeySales, s.sales)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(TopicProductsUpdated, TopicSalesUpdated)
	return nil
}

// TrackSale accumulates quantity and quantity*unitPrice revenue for a
// product, creating the record on first sale, and persists immediately.
func (s *CatalogStore) TrackSale(id int64, quantity int, unitPrice float64) error {
	s.mu.Lock()
	rec := s.sales[id]
	rec.Quantity += quantity
	rec.Revenue += float64(quantity) * unitPrice
	s.sales[id] = rec
	err := s.persist(KeySales, s.sales)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(TopicSalesUpdated)
	return nil
}

// Cart returns a copy of the cart lines.
func (s *CatalogStore) Cart() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartLine(nil), s.cart...)
}

// SaveCart replaces the full cart.
func (s *CatalogStore) SaveCart(lines []domain.CartLine) error {
	s.mu.Lock()
	s.cart = append([]domain.CartLine(nil), lines...)
	err := s.persist(KeyCart, s.cart)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(TopicCartUpdated)
	return nil
}

// SavedItems returns a copy of the saved-items list.
func (s *CatalogStore) SavedItems() []domain.SavedItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.SavedItem(nil), s.saved...)
}

// SaveSavedItems replaces the full saved-items list.
func (s *CatalogStore) SaveSavedItems(items []domain.SavedItem) error {
	s.mu.Lock()
	s.saved = append([]domain.SavedItem(nil), items...)
	err := s.persist(KeySavedItems, s.saved)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(TopicSavedUpdated)
	return nil
}

// Bus exposes the event bus for controllers that subscribe to
// mutation topics.
func (s *CatalogStore) Bus() EventBus.Bus {
	return s.bus
}

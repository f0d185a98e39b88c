package store

// Persisted collection keys. The names match the legacy browser
// local-storage schema so exported data stays interchangeable.
const (
	KeyProducts   = "adminProducts"
	KeySales      = "salesData"
	KeyCart       = "cart"
	KeySavedItems = "savedItems"

	// KeyLastProductID is the id high-water mark. It only ever grows,
	// so a freed id is never handed out again after delete + re-add.
	KeyLastProductID = "lastProductId"
)

// Backend is the key-value persistence boundary of the catalog store.
// Get returns (nil, nil) for an absent key. Implementations must be
// safe for concurrent use.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

package repositories

import "gorm.io/gorm"

// RepoSet bundles the repositories bound to one transaction. Everything
// written through a RepoSet inside TxManager.InTransaction commits or rolls
// back together.
type RepoSet struct {
	Products     ProductRepository
	ProductTypes ProductTypeRepository
	Users        UserRepository
	Bids         BidRepository
}

// TxManager runs a function against a transaction-scoped RepoSet. The
// importers use it to commit a whole file atomically while still recording
// row-level failures without aborting.
type TxManager interface {
	InTransaction(fn func(repos *RepoSet) error) error
}

// GORMTxManager is a GORM implementation of TxManager.
type GORMTxManager struct {
	db *gorm.DB
}

// NewGORMTxManager creates a new instance of GORMTxManager.
func NewGORMTxManager(db *gorm.DB) *GORMTxManager {
	return &GORMTxManager{
		db: db,
	}
}

// InTransaction runs fn inside a single database transaction. A non-nil
// error from fn rolls everything back.
func (m *GORMTxManager) InTransaction(fn func(repos *RepoSet) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(&RepoSet{
			Products:     NewGORMProductRepository(tx),
			ProductTypes: NewGORMProductTypeRepository(tx),
			Users:        NewGORMUserRepository(tx),
			Bids:         NewGORMBidRepository(tx),
		})
	})
}

// MockTxManager runs the function directly against a fixed RepoSet, with no
// transactional behavior. Intended for tests built on the in-memory mocks.
type MockTxManager struct {
	Repos *RepoSet
}

// NewMockTxManager creates a MockTxManager over the in-memory repositories.
func NewMockTxManager() *MockTxManager {
	return &MockTxManager{
		Repos: &RepoSet{
			Products:     NewMockProductRepository(),
			ProductTypes: NewMockProductTypeRepository(),
			Users:        NewMockUserRepository(),
			Bids:         NewMockBidRepository(),
		},
	}
}

// InTransaction calls fn with the fixed RepoSet.
func (m *MockTxManager) InTransaction(fn func(repos *RepoSet) error) error {
	return fn(m.Repos)
}

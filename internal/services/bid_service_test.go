package services_test

import (
	"sync"
	"testing"
	"time"

	"crispybid/internal/apperrors"
	"crispybid/internal/models"
	"crispybid/internal/repositories"
	"crispybid/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// stubTxManager hands the given RepoSet straight to the callback.
type stubTxManager struct {
	repos *repositories.RepoSet
}

func (s *stubTxManager) InTransaction(fn func(repos *repositories.RepoSet) error) error {
	return fn(s.repos)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySerial(serial string) (*models.Product, error) {
	args := m.Called(serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

// MockBidRepo is a mock implementation of repositories.BidRepository
type MockBidRepo struct {
	mock.Mock
}

func (m *MockBidRepo) Create(bid *models.Bid) error {
	args := m.Called(bid)
	return args.Error(0)
}

func (m *MockBidRepo) GetByProduct(productID string) ([]models.Bid, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bid), args.Error(1)
}

func (m *MockBidRepo) GetHighestForProduct(productID string) (*models.Bid, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bid), args.Error(1)
}

func newBidServiceFixture() (*services.BidService, *MockProductRepository, *MockUserRepository, *MockBidRepo) {
	productRepo := new(MockProductRepository)
	userRepo := new(MockUserRepository)
	bidRepo := new(MockBidRepo)
	tx := &stubTxManager{repos: &repositories.RepoSet{
		Products: productRepo,
		Users:    userRepo,
		Bids:     bidRepo,
	}}
	return services.NewBidService(tx), productRepo, userRepo, bidRepo
}

func openProduct() *models.Product {
	return &models.Product{
		ID:            "prod-1",
		Model:         "A",
		Serial:        "123",
		StartingPrice: decimal.NewNullDecimal(decimal.RequireFromString("10.00")),
	}
}

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestBidService_PlaceBid_ProductNotFound(t *testing.T) {
	service, productRepo, userRepo, _ := newBidServiceFixture()

	productRepo.On("GetByID", "missing").Return(nil, apperrors.NotFoundf("product not found with id: missing")).Once()

	bid, err := service.PlaceBid("missing", price("15.00"), "bidder@example.com")
	assert.Error(t, err)
	assert.Nil(t, bid)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything)
	productRepo.AssertExpectations(t)
}

func TestBidService_PlaceBid_ClosedProduct(t *testing.T) {
	service, productRepo, _, _ := newBidServiceFixture()

	product := openProduct()
	product.Closed = true
	productRepo.On("GetByID", "prod-1").Return(product, nil).Once()

	bid, err := service.PlaceBid("prod-1", price("15.00"), "bidder@example.com")
	assert.Error(t, err)
	assert.Nil(t, bid)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "closed product")
	productRepo.AssertExpectations(t)
}

func TestBidService_PlaceBid_NonPositivePrice(t *testing.T) {
	service, productRepo, userRepo, _ := newBidServiceFixture()

	productRepo.On("GetByID", "prod-1").Return(openProduct(), nil)

	for _, p := range []decimal.NullDecimal{
		{}, // absent
		price("0"),
		price("-3.50"),
	} {
		bid, err := service.PlaceBid("prod-1", p, "bidder@example.com")
		assert.Error(t, err)
		assert.Nil(t, bid)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		assert.Contains(t, err.Error(), "greater than 0")
	}

	// A bid doomed by its price never touches the user store.
	userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything)
}

func TestBidService_PlaceBid_BelowStartingPrice(t *testing.T) {
	service, productRepo, userRepo, _ := newBidServiceFixture()

	productRepo.On("GetByID", "prod-1").Return(openProduct(), nil).Once()

	bid, err := service.PlaceBid("prod-1", price("9.99"), "bidder@example.com")
	assert.Error(t, err)
	assert.Nil(t, bid)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "starting price of 10.00")
	userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything)
}

func TestBidService_PlaceBid_UserNotFound(t *testing.T) {
	service, productRepo, userRepo, _ := newBidServiceFixture()

	productRepo.On("GetByID", "prod-1").Return(openProduct(), nil).Once()
	userRepo.On("GetByEmail", "ghost@example.com").Return(nil, apperrors.NotFoundf("user not found")).Once()

	bid, err := service.PlaceBid("prod-1", price("15.00"), "ghost@example.com")
	assert.Error(t, err)
	assert.Nil(t, bid)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "user not found")
	userRepo.AssertExpectations(t)
}

func TestBidService_PlaceBid_DuplicateBid(t *testing.T) {
	service, productRepo, userRepo, bidRepo := newBidServiceFixture()

	productRepo.On("GetByID", "prod-1").Return(openProduct(), nil).Once()
	userRepo.On("GetByEmail", "bidder@example.com").Return(&models.AppUser{ID: "user-1", Email: "bidder@example.com"}, nil).Once()
	bidRepo.On("Create", mock.AnythingOfType("*models.Bid")).
		Return(apperrors.Conflictf("you have already placed a bid on this product")).Once()

	bid, err := service.PlaceBid("prod-1", price("15.00"), "bidder@example.com")
	assert.Error(t, err)
	assert.Nil(t, bid)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	bidRepo.AssertExpectations(t)
}

func TestBidService_PlaceBid_Success(t *testing.T) {
	service, productRepo, userRepo, bidRepo := newBidServiceFixture()

	productRepo.On("GetByID", "prod-1").Return(openProduct(), nil).Once()
	userRepo.On("GetByEmail", "bidder@example.com").Return(&models.AppUser{ID: "user-1", Email: "bidder@example.com"}, nil).Once()
	bidRepo.On("Create", mock.AnythingOfType("*models.Bid")).Return(nil).Once()

	before := time.Now()
	bid, err := service.PlaceBid("prod-1", price("12.34"), "bidder@example.com")
	assert.NoError(t, err)
	assert.NotNil(t, bid)
	assert.Equal(t, "prod-1", bid.ProductID)
	assert.Equal(t, "user-1", bid.UserID)
	assert.True(t, bid.Price.Equal(decimal.RequireFromString("12.34")), "stored price must be exact")
	assert.False(t, bid.CreatedAt.Before(before))
	bidRepo.AssertExpectations(t)
}

func TestBidService_PlaceBid_ExactStartingPriceAccepted(t *testing.T) {
	service, productRepo, userRepo, bidRepo := newBidServiceFixture()

	productRepo.On("GetByID", "prod-1").Return(openProduct(), nil).Once()
	userRepo.On("GetByEmail", "bidder@example.com").Return(&models.AppUser{ID: "user-1"}, nil).Once()
	bidRepo.On("Create", mock.AnythingOfType("*models.Bid")).Return(nil).Once()

	bid, err := service.PlaceBid("prod-1", price("10.00"), "bidder@example.com")
	assert.NoError(t, err)
	assert.True(t, bid.Price.Equal(decimal.RequireFromString("10.00")))
}

// Two concurrent bids from the same user on the same product must end as
// exactly one success and one conflict. The in-memory bid repository
// enforces the same (product, user) uniqueness as the database index.
func TestBidService_PlaceBid_ConcurrentDuplicate(t *testing.T) {
	tx := repositories.NewMockTxManager()
	service := services.NewBidService(tx)

	product := openProduct()
	assert.NoError(t, tx.Repos.Products.Create(product))
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	user := &models.AppUser{Email: "bidder@example.com", Password: string(hash), Role: models.RoleUser}
	assert.NoError(t, tx.Repos.Users.Create(user))

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.PlaceBid(product.ID, price("15.00"), "bidder@example.com")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		if err == nil {
			successes++
		} else if apperrors.KindOf(err) == apperrors.KindConflict {
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
}

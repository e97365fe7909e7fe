package services

import (
	"io"

	"crispybid/internal/apperrors"
	"crispybid/internal/models"
	"crispybid/internal/repositories"

	"github.com/gocarina/gocsv"
)

// ImageStorage stores product images in an external object store and hands
// out time-limited read URLs.
type ImageStorage interface {
	UploadProductImage(productID, filename, contentType string, file io.Reader, size int64) (string, error)
	PresignedURL(objectKey string) (string, error)
}

// ProductService handles catalog reads, auction closing, image attachment
// and single-product CSV export.
type ProductService struct {
	productRepo repositories.ProductRepository
	bidRepo     repositories.BidRepository
	userRepo    repositories.UserRepository
	images      ImageStorage
}

// NewProductService creates a new ProductService. The image storage may be
// nil when no object store is configured.
func NewProductService(productRepo repositories.ProductRepository,
	bidRepo repositories.BidRepository,
	userRepo repositories.UserRepository,
	images ImageStorage) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		bidRepo:     bidRepo,
		userRepo:    userRepo,
		images:      images,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.productRepo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// GetBids retrieves all bids placed on a product, newest first.
func (s *ProductService) GetBids(productID string) ([]models.Bid, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}
	return s.bidRepo.GetByProduct(productID)
}

// CloseAuction flips the product's closed flag. The transition is one-way:
// closing an already closed product is a no-op.
func (s *ProductService) CloseAuction(id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product.Closed {
		return product, nil
	}
	product.Closed = true
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// AttachImage uploads an image for the product and records its object key.
// Returns the object key and a presigned URL for immediate display.
func (s *ProductService) AttachImage(productID, filename, contentType string, file io.Reader, size int64) (string, string, error) {
	if s.images == nil {
		return "", "", apperrors.Internal("image storage is not configured", nil)
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return "", "", err
	}

	objectKey, err := s.images.UploadProductImage(product.ID, filename, contentType, file, size)
	if err != nil {
		return "", "", err
	}

	product.ImageObjectKey = objectKey
	if err := s.productRepo.Update(product); err != nil {
		return "", "", err
	}

	url, err := s.images.PresignedURL(objectKey)
	if err != nil {
		return "", "", err
	}
	return objectKey, url, nil
}

// ImageURL returns a presigned URL for the product's stored image.
func (s *ProductService) ImageURL(productID string) (string, string, error) {
	if s.images == nil {
		return "", "", apperrors.Internal("image storage is not configured", nil)
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return "", "", err
	}
	if product.ImageObjectKey == "" {
		return "", "", apperrors.NotFoundf("product does not have an image")
	}
	url, err := s.images.PresignedURL(product.ImageObjectKey)
	if err != nil {
		return "", "", err
	}
	return product.ImageObjectKey, url, nil
}

type productExportRow struct {
	Type          string `csv:"type"`
	Model         string `csv:"model"`
	Serial        string `csv:"serial"`
	Description   string `csv:"description"`
	StartingPrice string `csv:"starting price"`
	Email         string `csv:"email"`
	FinalPrice    string `csv:"final price"`
}

// ExportCSV renders a single product as a one-row CSV. The email and final
// price columns come from the highest bid, and stay empty when nobody bid.
func (s *ProductService) ExportCSV(productID string) (string, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return "", err
	}

	row := productExportRow{
		Model:       product.Model,
		Serial:      product.Serial,
		Description: product.Description,
	}
	if product.ProductType != nil {
		row.Type = product.ProductType.Name
	}
	if product.StartingPrice.Valid {
		row.StartingPrice = product.StartingPrice.Decimal.StringFixed(2)
	}

	highest, err := s.bidRepo.GetHighestForProduct(productID)
	if err != nil && !apperrors.IsNotFound(err) {
		return "", err
	}
	if err == nil {
		bidder, userErr := s.userRepo.GetByID(highest.UserID)
		if userErr != nil {
			return "", userErr
		}
		row.Email = bidder.Email
		row.FinalPrice = highest.Price.StringFixed(2)
	}

	csv, err := gocsv.MarshalString([]productExportRow{row})
	if err != nil {
		return "", apperrors.Internal("failed to marshal product CSV", err)
	}
	return csv, nil
}

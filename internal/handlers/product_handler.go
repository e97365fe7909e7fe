package handlers

import (
	"fmt"
	"log"
	"mime/multipart"

	"crispybid/internal/apperrors"
	"crispybid/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	productService *services.ProductService
	importService  *services.ProductImportService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService, importService *services.ProductImportService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		importService:  importService,
	}
}

// RegisterRoutes registers the read-only product routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Get("/:id/bids", h.HandleGetProductBids)
	productRoutes.Get("/:id/export", h.HandleExportProduct)
	productRoutes.Get("/:id/image-url", h.HandleGetImageURL)
}

// RegisterAdminRoutes registers the mutating product routes.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/import", h.HandleImportProducts)
	productRoutes.Post("/:id/close", h.HandleCloseAuction)
	productRoutes.Post("/:id/image", h.HandleUploadImage)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.productService.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.productService.GetProductByID(c.Params("id"))
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleGetProductBids retrieves all bids on a product, newest first.
func (h *ProductHandler) HandleGetProductBids(c *fiber.Ctx) error {
	bids, err := h.productService.GetBids(c.Params("id"))
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(bids)
}

// HandleImportProducts imports a product catalog from an uploaded CSV or
// XLSX file. Row failures come back inside a 200 result; a bad header or an
// unreadable file fails the whole request with zero counts.
func (h *ProductHandler) HandleImportProducts(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader.Size == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(emptyProductImportResult("CSV file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening product import upload: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(emptyProductImportResult("Failed to read CSV file"))
	}
	defer file.Close()

	result, err := h.importService.ImportProducts(file, fileHeader.Filename)
	if err != nil {
		log.Printf("Product import failed: %v", err)
		if apperrors.KindOf(err) == apperrors.KindValidation {
			return c.Status(fiber.StatusBadRequest).JSON(emptyProductImportResult(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(emptyProductImportResult(err.Error()))
	}
	return c.JSON(result)
}

// HandleCloseAuction stops a product from accepting bids.
func (h *ProductHandler) HandleCloseAuction(c *fiber.Ctx) error {
	product, err := h.productService.CloseAuction(c.Params("id"))
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleUploadImage stores a product image and records its object key.
func (h *ProductHandler) HandleUploadImage(c *fiber.Ctx) error {
	productID := c.Params("id")

	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader.Size == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening image upload: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read image file",
		})
	}
	defer file.Close()

	objectKey, url, err := h.productService.AttachImage(productID, fileHeader.Filename,
		uploadContentType(fileHeader), file, fileHeader.Size)
	if err != nil {
		log.Printf("Error uploading image for product %s: %v", productID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"product_id":       productID,
		"image_object_key": objectKey,
		"image_url":        url,
	})
}

// HandleGetImageURL returns a presigned URL for the product's image.
func (h *ProductHandler) HandleGetImageURL(c *fiber.Ctx) error {
	productID := c.Params("id")
	objectKey, url, err := h.productService.ImageURL(productID)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"product_id":       productID,
		"image_object_key": objectKey,
		"image_url":        url,
	})
}

// HandleExportProduct streams a one-row CSV for the product.
func (h *ProductHandler) HandleExportProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	csv, err := h.productService.ExportCSV(productID)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "product-"+productID+".csv"))
	return c.SendString(csv)
}

func emptyProductImportResult(message string) *services.ProductImportResult {
	return &services.ProductImportResult{Errors: []string{message}}
}

func uploadContentType(fileHeader *multipart.FileHeader) string {
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		return "application/octet-stream"
	}
	return contentType
}

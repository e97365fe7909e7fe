package handlers

import (
	"log"

	"crispybid/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// BidHandler handles HTTP requests for placing bids.
type BidHandler struct {
	bidService *services.BidService
	validate   *validator.Validate
}

// NewBidHandler creates a new BidHandler.
func NewBidHandler(bidService *services.BidService) *BidHandler {
	return &BidHandler{
		bidService: bidService,
		validate:   validator.New(),
	}
}

// RegisterRoutes registers the bid routes with the Fiber app.
func (h *BidHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/bids", h.HandlePlaceBid)
}

// BidRequest represents the request body for placing a bid.
type BidRequest struct {
	ProductID string              `json:"product_id" validate:"required"`
	Price     decimal.NullDecimal `json:"price"`
}

// HandlePlaceBid places a bid for the authenticated user.
func (h *BidHandler) HandlePlaceBid(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)
	if email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "user must be authenticated to create a bid",
		})
	}

	var req BidRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing bid request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	bid, err := h.bidService.PlaceBid(req.ProductID, req.Price, email)
	if err != nil {
		log.Printf("Error placing bid on product %s: %v", req.ProductID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(bid)
}

package handlers

import (
	"log"

	"crispybid/internal/repositories"
	"crispybid/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user accounts. All routes are
// admin-only.
type UserHandler struct {
	userRepo      repositories.UserRepository
	importService *services.UserImportService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userRepo repositories.UserRepository, importService *services.UserImportService) *UserHandler {
	return &UserHandler{
		userRepo:      userRepo,
		importService: importService,
	}
}

// RegisterAdminRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterAdminRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/:id", h.HandleGetUserByID)
	userRoutes.Post("/import", h.HandleImportUsers)
}

// HandleGetUsers retrieves all users. Password hashes never serialize.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.userRepo.GetAll()
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(users)
}

// HandleGetUserByID retrieves a single user by their ID.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	user, err := h.userRepo.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(user)
}

// HandleImportUsers creates accounts from an uploaded newline-delimited
// email list and mails out generated credentials.
func (h *UserHandler) HandleImportUsers(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader.Size == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(&services.UserImportResult{
			Errors: []string{"CSV file is required"},
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening user import upload: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(&services.UserImportResult{
			Errors: []string{"Failed to read import file"},
		})
	}
	defer file.Close()

	result, err := h.importService.ImportUsers(file)
	if err != nil {
		log.Printf("User import failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(&services.UserImportResult{
			Errors: []string{err.Error()},
		})
	}
	return c.JSON(result)
}

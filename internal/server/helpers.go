package server

import (
	"strconv"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID parses a numeric path parameter.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid " + param)
	}
	return uint(id), nil
}

// parsePage reads the ?page=N query parameter. Garbage or missing values fall
// back to the first page; the service layer clamps out-of-range numbers.
func parsePage(c *fiber.Ctx) int {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// currentUserID returns the authenticated user's ID. Handlers behind
// RequireLogin can rely on it being set.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// optionalUserID returns the user ID when a valid token accompanied the
// request and zero otherwise.
func optionalUserID(c *fiber.Ctx) uint {
	return currentUserID(c)
}

// statusForError maps service error codes onto HTTP statuses.
func statusForError(err error) int {
	if appErr, ok := err.(*models.AppError); ok {
		switch appErr.Code {
		case models.CodeNotFound:
			return fiber.StatusNotFound
		case models.CodeValidation:
			return fiber.StatusBadRequest
		case models.CodeUnauthorized:
			return fiber.StatusForbidden
		}
	}
	return fiber.StatusInternalServerError
}

// respondError writes the standard error envelope using the mapped status.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}

// pageResponse is the envelope shared by every feed endpoint.
func pageResponse(page *models.Page) fiber.Map {
	return fiber.Map{
		"posts":       page.Items,
		"page":        page.Number,
		"page_size":   page.Size,
		"total_posts": page.TotalItems,
		"total_pages": page.TotalPages,
	}
}

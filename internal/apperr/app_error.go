package apperr

import "github.com/HenriqueBragaMoreira/gesture-pro/pkg/zerror"

// Predefined application errors. Handlers surface these through the
// apierr mapping; anything else becomes an opaque 500.
var (
	ErrCategoryNotFound  = zerror.NewNotFound("CATEGORY_NOT_FOUND", "category not found")
	ErrProductNotFound   = zerror.NewNotFound("PRODUCT_NOT_FOUND", "product not found")
	ErrCategoryNameTaken = zerror.NewConflict("CATEGORY_NAME_TAKEN", "category name already registered")

	ErrValidation = zerror.NewValidationFailed("VALIDATION_FAILED", "validation error")
	ErrIntegrity  = zerror.NewUnprocessableEntity("INTEGRITY_ERROR", "operation violates a data constraint")

	ErrInvalidCSVFormat = zerror.NewBadRequest("INVALID_CSV_FORMAT",
		"invalid CSV format, expected 6 columns: id, name, description, price, category_id, brand")
)

package v1

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gosuda/cadence/internal/domain"
)

// serviceError maps task service failures onto HTTP problem responses.
// Validation failures carry every invalid field; not-found covers both a
// missing task and one owned by another user.
func serviceError(err error, fallback string) error {
	if ve, ok := domain.AsValidationError(err); ok {
		details := make([]error, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			details = append(details, &huma.ErrorDetail{
				Location: "body." + f.Field,
				Message:  f.Message,
			})
		}
		return huma.Error422UnprocessableEntity("validation failed", details...)
	}

	if errors.Is(err, domain.ErrNotFound) {
		return huma.Error404NotFound("task not found")
	}

	return huma.Error500InternalServerError(fallback, err)
}

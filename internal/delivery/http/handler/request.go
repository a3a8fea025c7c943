package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/listing-portal/internal/pkg/errors"
	"github.com/listing-portal/internal/pkg/validator"
)

// parseBody разбирает JSON тела и валидирует его
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return errors.ErrInvalidRequest.WithMessage("Invalid request body")
	}
	return validator.Validate(dst)
}

// paramInt - числовой параметр пути
func paramInt(c *fiber.Ctx, name string) (int, error) {
	v, err := c.ParamsInt(name)
	if err != nil {
		return 0, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"field": name, "rule": "numeric"})
	}
	return v, nil
}

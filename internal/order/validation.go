package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateCreateOrder checks the shape of a create request: at least one
// line item, sane quantities, and internally consistent line totals.
func ValidateCreateOrder(req OrderCreateRequest) []ValidationError {
	var errs []ValidationError

	if len(req.Items) == 0 {
		errs = append(errs, ValidationError{
			Field:   "items",
			Message: "order must have at least one item",
		})
		return errs
	}

	for i, item := range req.Items {
		if strings.TrimSpace(item.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("items[%d].name", i),
				Message: "name is required",
			})
		}
		if item.Qty < 1 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("items[%d].qty", i),
				Message: "qty must be a positive integer",
			})
		}
		if item.Price < 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("items[%d].price", i),
				Message: "price cannot be negative",
			})
		}
		if item.Total != int64(item.Qty)*item.Price {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("items[%d].total", i),
				Message: "total must equal qty * price",
			})
		}
	}

	return errs
}

// RecomputeTotal prices every line against the catalog and returns the
// canonical order total. Client-sent prices are not trusted: a line whose
// unit price disagrees with the active catalog price is rejected, as is a
// line naming a snack the catalog does not carry.
func RecomputeTotal(ctx context.Context, catalog PriceCatalog, items []LineItem) (int64, error) {
	var total int64
	for _, item := range items {
		price, err := catalog.ActivePrice(ctx, item.Name)
		if err != nil {
			if errors.Is(err, ErrUnknownSnack) {
				return 0, fmt.Errorf("%w: %s", ErrUnknownSnack, item.Name)
			}
			return 0, fmt.Errorf("price lookup for %s: %w", item.Name, err)
		}
		if item.Price != price {
			return 0, fmt.Errorf("%w: %s priced %d, catalog says %d", ErrPriceMismatch, item.Name, item.Price, price)
		}
		total += int64(item.Qty) * price
	}
	return total, nil
}

// ErrPriceMismatch flags a client-sent price that disagrees with the catalog.
var ErrPriceMismatch = errors.New("price mismatch")

// variants.go

package main

import (
	"encoding/json"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	errInvalidVariants  = errors.New("Invalid variants format")
	errNoVariants       = errors.New("At least one variant is required")
	errVariantFields    = errors.New("Each variant must have ram, price, and quantity")
	errVariantCreateVal = errors.New("Price must be greater than 0 and quantity must be at least 1")
	errVariantEditVal   = errors.New("Price and quantity cannot be negative")
)

// variantInput is the wire form carried in the multipart "variants" field.
// Price and quantity are pointers so a missing field can be told apart from an
// explicit zero; a non-empty ID marks an existing variant whose identity must
// survive the edit.
type variantInput struct {
	ID       string   `json:"_id"`
	Ram      string   `json:"ram"`
	Price    *float64 `json:"price"`
	Quantity *float64 `json:"quantity"`
}

func parseVariants(raw string) ([]variantInput, error) {
	var parsed []variantInput
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, errInvalidVariants
	}
	if len(parsed) == 0 {
		return nil, errNoVariants
	}
	return parsed, nil
}

// validateVariantsCreate enforces the product-add rules: every field present,
// price strictly positive, quantity at least one.
func validateVariantsCreate(variants []variantInput) error {
	for _, v := range variants {
		if v.Ram == "" || v.Price == nil || v.Quantity == nil {
			return errVariantFields
		}
		if *v.Price <= 0 || *v.Quantity < 1 {
			return errVariantCreateVal
		}
	}
	return nil
}

// validateVariantsEdit is looser than the create rules: the editor may zero
// out a price or run the stock down to nothing, but negatives stay invalid.
func validateVariantsEdit(variants []variantInput) error {
	for _, v := range variants {
		if v.Ram == "" || v.Price == nil || v.Quantity == nil {
			return errVariantFields
		}
		if *v.Price < 0 || *v.Quantity < 0 {
			return errVariantEditVal
		}
	}
	return nil
}

// normalizeVariants turns validated inputs into stored variants. An input that
// carries an id keeps it; one without gets a fresh id. Stored ids are never
// regenerated, so repeat edits leave surviving variant identities untouched.
func normalizeVariants(variants []variantInput) ([]Variant, error) {
	out := make([]Variant, 0, len(variants))
	for _, v := range variants {
		id := primitive.NewObjectID()
		if v.ID != "" {
			parsed, err := primitive.ObjectIDFromHex(v.ID)
			if err != nil {
				return nil, errInvalidVariants
			}
			id = parsed
		}
		out = append(out, Variant{
			ID:       id,
			Ram:      v.Ram,
			Price:    *v.Price,
			Quantity: int(*v.Quantity),
		})
	}
	return out, nil
}

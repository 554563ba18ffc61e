// variants_test.go

package main

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseVariants(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
		wantLen int
	}{
		{"valid list", `[{"ram":"4GB","price":100,"quantity":5}]`, nil, 1},
		{"not json", `{{{`, errInvalidVariants, 0},
		{"not a list", `{"ram":"4GB"}`, errInvalidVariants, 0},
		{"empty list", `[]`, errNoVariants, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parseVariants(tt.raw)
			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if len(parsed) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(parsed), tt.wantLen)
			}
		})
	}
}

func f(v float64) *float64 { return &v }

func TestValidateVariantsCreate(t *testing.T) {
	tests := []struct {
		name    string
		variant variantInput
		wantErr error
	}{
		{"valid", variantInput{Ram: "4GB", Price: f(100), Quantity: f(5)}, nil},
		{"missing ram", variantInput{Price: f(100), Quantity: f(5)}, errVariantFields},
		{"missing price", variantInput{Ram: "4GB", Quantity: f(5)}, errVariantFields},
		{"missing quantity", variantInput{Ram: "4GB", Price: f(100)}, errVariantFields},
		{"zero price", variantInput{Ram: "4GB", Price: f(0), Quantity: f(5)}, errVariantCreateVal},
		{"negative price", variantInput{Ram: "4GB", Price: f(-1), Quantity: f(5)}, errVariantCreateVal},
		{"zero quantity", variantInput{Ram: "4GB", Price: f(100), Quantity: f(0)}, errVariantCreateVal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateVariantsCreate([]variantInput{tt.variant}); err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateVariantsEdit(t *testing.T) {
	tests := []struct {
		name    string
		variant variantInput
		wantErr error
	}{
		// the editor may zero out price and stock, unlike creation
		{"zero price ok", variantInput{Ram: "4GB", Price: f(0), Quantity: f(5)}, nil},
		{"zero quantity ok", variantInput{Ram: "4GB", Price: f(100), Quantity: f(0)}, nil},
		{"negative price", variantInput{Ram: "4GB", Price: f(-1), Quantity: f(5)}, errVariantEditVal},
		{"negative quantity", variantInput{Ram: "4GB", Price: f(100), Quantity: f(-1)}, errVariantEditVal},
		{"missing price", variantInput{Ram: "4GB", Quantity: f(5)}, errVariantFields},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateVariantsEdit([]variantInput{tt.variant}); err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeVariantsKeepsExistingIdentity(t *testing.T) {
	existing := primitive.NewObjectID()
	inputs := []variantInput{
		{ID: existing.Hex(), Ram: "4GB", Price: f(100), Quantity: f(5)},
		{Ram: "8GB", Price: f(200), Quantity: f(3)},
	}

	out, err := normalizeVariants(inputs)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].ID != existing {
		t.Errorf("existing variant id regenerated: got %s, want %s", out[0].ID.Hex(), existing.Hex())
	}
	if out[1].ID.IsZero() {
		t.Errorf("new variant got zero id")
	}
	if out[1].ID == existing {
		t.Errorf("new variant reused existing id")
	}
	if out[0].Price != 100 || out[0].Quantity != 5 || out[0].Ram != "4GB" {
		t.Errorf("fields not carried over: %+v", out[0])
	}
}

func TestNormalizeVariantsRejectsBadID(t *testing.T) {
	_, err := normalizeVariants([]variantInput{{ID: "not-hex", Ram: "4GB", Price: f(1), Quantity: f(1)}})
	if err != errInvalidVariants {
		t.Fatalf("err = %v, want %v", err, errInvalidVariants)
	}
}

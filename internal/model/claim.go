package model

import (
	"fmt"
	"strings"
)

// ProductType categorizes the beverage and selects which regulations apply
type ProductType string

const (
	ProductSpirits ProductType = "spirits" // 27 CFR Part 5 (Distilled Spirits)
	ProductWine    ProductType = "wine"    // 27 CFR Part 4 (Wine)
	ProductBeer    ProductType = "beer"    // 27 CFR Part 7 (Malt Beverages)
)

func (p ProductType) String() string {
	return string(p)
}

// ParseProductType converts a user-supplied category string to a ProductType
func ParseProductType(s string) (ProductType, error) {
	switch ProductType(strings.ToLower(strings.TrimSpace(s))) {
	case ProductSpirits:
		return ProductSpirits, nil
	case ProductWine:
		return ProductWine, nil
	case ProductBeer:
		return ProductBeer, nil
	default:
		return "", fmt.Errorf("invalid product type: %q (must be spirits, wine, or beer)", s)
	}
}

// Claim holds the user-submitted product information to verify against the
// label. Product-specific fields are optional and only consulted when the
// product type requires them. A Claim is immutable for the lifetime of a
// verification call.
type Claim struct {
	// Required for all products
	BrandName      string  `json:"brand_name" yaml:"brand_name"`
	ProductClass   string  `json:"product_class" yaml:"product_class"`
	AlcoholContent float64 `json:"alcohol_content" yaml:"alcohol_content"`

	// Common optional fields
	NetContents     string `json:"net_contents,omitempty" yaml:"net_contents,omitempty"`
	BottlerName     string `json:"bottler_name,omitempty" yaml:"bottler_name,omitempty"`
	Address         string `json:"address,omitempty" yaml:"address,omitempty"`
	CountryOfOrigin string `json:"country_of_origin,omitempty" yaml:"country_of_origin,omitempty"`
	IsImported      bool   `json:"is_imported,omitempty" yaml:"is_imported,omitempty"`

	// Spirits-specific fields
	AgeStatement        string   `json:"age_statement,omitempty" yaml:"age_statement,omitempty"`
	Proof               *float64 `json:"proof,omitempty" yaml:"proof,omitempty"`
	StateOfDistillation string   `json:"state_of_distillation,omitempty" yaml:"state_of_distillation,omitempty"`

	// Wine-specific fields
	VintageYear      *int   `json:"vintage_year,omitempty" yaml:"vintage_year,omitempty"`
	ContainsSulfites bool   `json:"contains_sulfites,omitempty" yaml:"contains_sulfites,omitempty"`
	Appellation      string `json:"appellation,omitempty" yaml:"appellation,omitempty"`

	// Beer-specific fields
	Style string `json:"style,omitempty" yaml:"style,omitempty"`
}

// Validate rejects out-of-invariant claims before they reach the engine.
// The engine itself does not re-check these basic invariants.
func (c *Claim) Validate() error {
	if strings.TrimSpace(c.BrandName) == "" {
		return fmt.Errorf("brand_name cannot be empty")
	}
	if strings.TrimSpace(c.ProductClass) == "" {
		return fmt.Errorf("product_class cannot be empty")
	}
	if c.AlcoholContent < 0 || c.AlcoholContent > 100 {
		return fmt.Errorf("alcohol_content must be between 0 and 100, got %v", c.AlcoholContent)
	}
	if c.Proof != nil && *c.Proof < 0 {
		return fmt.Errorf("proof must be non-negative, got %v", *c.Proof)
	}
	if c.VintageYear != nil {
		if *c.VintageYear < 1800 || *c.VintageYear > 2100 {
			return fmt.Errorf("vintage_year must be a valid 4-digit year, got %d", *c.VintageYear)
		}
	}
	return nil
}

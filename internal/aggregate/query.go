package aggregate

import (
	"github.com/go-playground/validator/v10"
)

// FacetAll is the sentinel facet value meaning unfiltered; an empty facet
// means the same thing.
const FacetAll = "all"

// Query carries the listing-endpoint filters.
type Query struct {
	Text           string `validate:"max=200"`
	Location       string `validate:"max=200"`
	WorkType       string `validate:"omitempty,oneof=all remote hybrid onsite"`
	EmploymentType string `validate:"omitempty,oneof=all full-time part-time contract"`
	Seniority      string `validate:"omitempty,oneof=all entry mid senior"`
	Category       string `validate:"max=100"`
}

var queryValidator = validator.New()

// Validate rejects facet values outside their enumerations.
func (q *Query) Validate() error {
	return queryValidator.Struct(q)
}

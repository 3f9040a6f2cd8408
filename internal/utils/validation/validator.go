package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator accumulates field errors so callers can report all of them at once.
type Validator struct {
	Errors []ValidationError
}

func New() *Validator {
	return &Validator{
		Errors: make([]ValidationError, 0),
	}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Positive requires d > 0.
func (v *Validator) Positive(d decimal.Decimal, field string) {
	v.Check(d.IsPositive(), field, "must be greater than 0")
}

// NonNegative requires d >= 0.
func (v *Validator) NonNegative(d decimal.Decimal, field string) {
	v.Check(!d.IsNegative(), field, "must not be negative")
}

// Ratio requires 0 <= d <= 1.
func (v *Validator) Ratio(d decimal.Decimal, field string) {
	v.Check(!d.IsNegative() && d.LessThanOrEqual(decimal.NewFromInt(1)), field, "must be between 0 and 1")
}

// Messages renders the accumulated errors as "field: message" strings.
func (v *Validator) Messages() []string {
	out := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		out = append(out, e.Error())
	}
	return out
}

// Err returns nil when valid, otherwise an error listing every failure.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(v.Messages(), "; "))
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
)

// Validator checks a loaded Config against its validate tags.
// Besides the built-in rules it knows "globpattern", used for catalog file
// patterns and raw-override item patterns.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the resolver's custom rules registered
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("globpattern", func(fl validator.FieldLevel) bool {
		return doublestar.ValidatePattern(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate returns one error listing every field that failed
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s: rule %q rejects %v", e.Namespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("invalid resolver configuration:\n  %s", strings.Join(problems, "\n  "))
}

// ValidateConfig checks resolver limits, catalog patterns, database, daemon,
// logging and metrics settings in one pass
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

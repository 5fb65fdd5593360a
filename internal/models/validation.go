package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the pick's struct tags
func (p *Pick) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid pick: %w", err)
	}
	return nil
}

// Validate checks the trade's struct tags
func (t *Trade) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("invalid trade: %w", err)
	}
	return nil
}

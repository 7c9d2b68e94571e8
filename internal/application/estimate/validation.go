package estimate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/takeoff-go/internal/domain/quote"
	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

var validate = validator.New()

// validateState checks the settings and manual items a quote is computed from.
// Calculators tolerate malformed measurements, so rows are not validated.
func validateState(state quote.State) error {
	if err := state.Settings.Financial.Validate(); err != nil {
		return err
	}
	if err := validate.Struct(state.Settings); err != nil {
		return toValidationError("settings", err)
	}
	for i, item := range state.ExtraItems {
		if err := validate.Struct(item); err != nil {
			return toValidationError(fmt.Sprintf("extra_items[%d]", i), err)
		}
	}
	return nil
}

func toValidationError(prefix string, err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return shared.NewValidationError(prefix+"."+fe.Namespace(), fmt.Sprintf("failed %q rule (value %v)", fe.Tag(), fe.Value()))
	}
	return shared.NewValidationError(prefix, err.Error())
}

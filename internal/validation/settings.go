package validation

import (
	"fmt"

	"github.com/ndewijer/investment-goal-tracker/internal/api/request"
	"github.com/ndewijer/investment-goal-tracker/internal/model"
)

func ValidateUpdateConfig(req request.UpdateConfigRequest) error {
	errors := make(map[string]string)

	if req.Theme != nil && !model.ValidThemes[*req.Theme] {
		errors["theme"] = fmt.Sprintf("invalid theme: %s", *req.Theme)
	}
	if req.Currency != nil && !model.ValidCurrencies[*req.Currency] {
		errors["currency"] = fmt.Sprintf("invalid currency: %s", *req.Currency)
	}
	if req.Locale != nil && !model.ValidLocales[*req.Locale] {
		errors["locale"] = fmt.Sprintf("invalid locale: %s", *req.Locale)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

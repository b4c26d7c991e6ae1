package request

type UpdateConfigRequest struct {
	Theme    *string `json:"theme,omitempty"`
	Currency *string `json:"currency,omitempty"`
	Locale   *string `json:"locale,omitempty"`
}

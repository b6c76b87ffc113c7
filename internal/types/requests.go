package types

import "github.com/go-playground/validator/v10"

// APIKeyRequest is the body of a save-key request
type APIKeyRequest struct {
	APIKey string `json:"apiKey" validate:"required"`
}

// ModeRequest is the body of a mode change request
type ModeRequest struct {
	Mode Mode `json:"mode" validate:"required,oneof=local ai"`
}

// SearchResponse is the reply to a successful search request
type SearchResponse struct {
	Success bool           `json:"success"`
	Results []ScoredResult `json:"results"`
}

// Validate validates the SearchRequest using the validator.
func (r *SearchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the APIKeyRequest using the validator.
func (r *APIKeyRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ModeRequest using the validator.
func (r *ModeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the Settings using the validator.
func (s *Settings) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

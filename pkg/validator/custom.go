package validator

import "github.com/go-playground/validator/v10"

func RegisterCustomValidations(validate *validator.Validate) {
	validate.RegisterValidation("lat", validateLat)
	validate.RegisterValidation("lng", validateLng)
	validate.RegisterValidation("search_radius", validateSearchRadius)
}

func validateLat(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90.0 && lat <= 90.0
}

func validateLng(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return lng >= -180.0 && lng <= 180.0
}

// validateSearchRadius is a coarse request-shape check using the default
// policy bounds (MIN_SEARCH_RADIUS_M / MAX_SEARCH_RADIUS_M defaults).
// The authoritative check against the configured bounds happens in the
// lifecycle service; this tag only rejects obviously malformed input early.
func validateSearchRadius(fl validator.FieldLevel) bool {
	radius := fl.Field().Float()
	return radius >= 50.0 && radius <= 2000.0
}

package validation

import "todo-sync/internal/config"

// UserValidator validates user names before they are sent to the API.
// Any printable name the server lists is accepted; the client escapes it in paths.
type UserValidator struct {
	validator *Validator
}

// NewUserValidator creates a new user validator
func NewUserValidator() *UserValidator {
	return &UserValidator{validator: NewValidator()}
}

// NewUserValidatorWithConfig creates a user validator using configured limits
func NewUserValidatorWithConfig(cfg *config.Config) *UserValidator {
	return &UserValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateUserName validates a user name for selection
func (uv *UserValidator) ValidateUserName(name string) error {
	validationError := NewValidationError()

	if !uv.validator.IsNonEmptyString(name) {
		validationError.AddRequiredError("user")
		return validationError
	}
	if !uv.validator.IsValidUserNameLength(name) {
		validationError.AddInvalidLengthError("user", name, 1, uv.validator.getUserNameMaxLength())
	}
	if uv.validator.HasControlCharacters(name) {
		validationError.AddInvalidCharacterError("user", name)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidRecipe      = "INVALID_RECIPE"
	ErrCodeRecipeNotFound     = "RECIPE_NOT_FOUND"
	ErrCodeInvalidUser        = "INVALID_USER"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrRecipeNotFound      = NewDomainError(ErrCodeRecipeNotFound, "Recipe not found")
	ErrTitleRequired       = NewDomainError(ErrCodeMissingField, "Title is required")
	ErrTimeMinutesRequired = NewDomainError(ErrCodeMissingField, "Time in minutes is required")
	ErrPriceRequired       = NewDomainError(ErrCodeMissingField, "Price is required")
	ErrTitleTooLong        = NewDomainError(ErrCodeInvalidRecipe, "Title must be at most 255 characters")
	ErrLinkTooLong         = NewDomainError(ErrCodeInvalidRecipe, "Link must be at most 255 characters")
	ErrInvalidTimeMinutes  = NewDomainError(ErrCodeInvalidRecipe, "Time in minutes must be between 0 and 2147483647")
	ErrInvalidPrice        = NewDomainError(ErrCodeInvalidRecipe, "Price must be between 0 and 999.99 with at most 2 decimal places")
	ErrEmailRequired       = NewDomainError(ErrCodeMissingField, "Email is required")
	ErrPasswordTooShort    = NewDomainError(ErrCodeInvalidUser, "Password must be at least 5 characters")
	ErrEmailTaken          = NewDomainError(ErrCodeEmailTaken, "A user with this email already exists")
	ErrInvalidCredentials  = NewDomainError(ErrCodeInvalidCredentials, "Unable to authenticate with provided credentials")
	ErrUserNotFound        = NewDomainError(ErrCodeInvalidUser, "User not found")
)

package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON           = "INVALID_JSON"
	ErrCodeMissingField          = "MISSING_FIELD"
	ErrCodeInvalidQuantity       = "INVALID_QUANTITY"
	ErrCodeItemNotFound          = "ITEM_NOT_FOUND"
	ErrCodeItemUnavailable       = "ITEM_UNAVAILABLE"
	ErrCodeOptionNotFound        = "OPTION_NOT_FOUND"
	ErrCodeSessionNotFound       = "SESSION_NOT_FOUND"
	ErrCodeInvalidTable          = "INVALID_TABLE"
	ErrCodeInvalidLanguage       = "INVALID_LANGUAGE"
	ErrCodeInvalidScreen         = "INVALID_SCREEN"
	ErrCodeInvalidLogin          = "INVALID_LOGIN"
	ErrCodeNotLoggedIn           = "NOT_LOGGED_IN"
	ErrCodeEmptyCart             = "EMPTY_CART"
	ErrCodeOrderNotFound         = "ORDER_NOT_FOUND"
	ErrCodeInvalidComplaintType  = "INVALID_COMPLAINT_TYPE"
	ErrCodeInvalidPaymentMethod  = "INVALID_PAYMENT_METHOD"
	ErrCodeCategoryExists        = "CATEGORY_EXISTS"
	ErrCodeCategoryNotFound      = "CATEGORY_NOT_FOUND"
	ErrCodeUnknownCategory       = "UNKNOWN_CATEGORY"
	ErrCodeMenuItemExists        = "MENU_ITEM_EXISTS"
	ErrCodeMenuItemNotFound      = "MENU_ITEM_NOT_FOUND"
	ErrCodeInvalidPrice          = "INVALID_PRICE"
	ErrCodeInvalidPassword       = "INVALID_PASSWORD"
	ErrCodeTooManyAttempts       = "TOO_MANY_ATTEMPTS"
	ErrCodeUnauthorised          = "UNAUTHORIZED"
	ErrCodeExportUnavailable     = "EXPORT_UNAVAILABLE"
	ErrCodeInternalError         = "INTERNAL_ERROR"
	ErrCodeMethodNotAllowed      = "METHOD_NOT_ALLOWED"
	ErrCodeInvalidQueryParameter = "INVALID_QUERY_PARAMETER"
)

// DomainError is a business rule violation with a stable code.
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
	ErrMissingField         = NewDomainError(ErrCodeMissingField, "A required field is missing")
	ErrInvalidQuantity      = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrNegativeQuantity     = NewDomainError(ErrCodeInvalidQuantity, "Quantity cannot be negative")
	ErrItemNotFound         = NewDomainError(ErrCodeItemNotFound, "Menu item not found")
	ErrItemUnavailable      = NewDomainError(ErrCodeItemUnavailable, "Menu item is not available")
	ErrOptionNotFound       = NewDomainError(ErrCodeOptionNotFound, "Price option not found for this item")
	ErrSessionNotFound      = NewDomainError(ErrCodeSessionNotFound, "Table session not found or expired")
	ErrInvalidTable         = NewDomainError(ErrCodeInvalidTable, "Table number must be 1 to 10 characters")
	ErrInvalidLanguage      = NewDomainError(ErrCodeInvalidLanguage, "Language must be fr, ar or en")
	ErrInvalidScreen        = NewDomainError(ErrCodeInvalidScreen, "Unknown screen")
	ErrInvalidLogin         = NewDomainError(ErrCodeInvalidLogin, "Login requires a name and a known method")
	ErrNotLoggedIn          = NewDomainError(ErrCodeNotLoggedIn, "No customer is logged in at this table")
	ErrEmptyCart            = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrOrderNotFound        = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidComplaintType = NewDomainError(ErrCodeInvalidComplaintType, "Complaint type must be food, service, cleanliness, waiting or other")
	ErrInvalidPaymentMethod = NewDomainError(ErrCodeInvalidPaymentMethod, "Payment method must be card, cash or split")
	ErrCategoryExists       = NewDomainError(ErrCodeCategoryExists, "A category with this id already exists")
	ErrCategoryNotFound     = NewDomainError(ErrCodeCategoryNotFound, "Category not found")
	ErrUnknownCategory      = NewDomainError(ErrCodeUnknownCategory, "Category name is not a known menu category")
	ErrMenuItemExists       = NewDomainError(ErrCodeMenuItemExists, "An item with this name already exists in the category")
	ErrMenuItemNotFound     = NewDomainError(ErrCodeMenuItemNotFound, "Item not found in this category")
	ErrInvalidPrice         = NewDomainError(ErrCodeInvalidPrice, "Price must not be negative")
	ErrInvalidPassword      = NewDomainError(ErrCodeInvalidPassword, "Mot de passe incorrect")
	ErrTooManyAttempts      = NewDomainError(ErrCodeTooManyAttempts, "Too many failed attempts, try again later")
	ErrUnauthorised         = NewDomainError(ErrCodeUnauthorised, "Admin authentication required")
	ErrExportUnavailable    = NewDomainError(ErrCodeExportUnavailable, "Menu publishing is not configured")
	ErrInvalidGroup         = NewDomainError(ErrCodeInvalidQueryParameter, "Group must be TOUS, ENTRÉES, PLATS, DESSERTS or BOISSONS")
	ErrInvalidLimit         = NewDomainError(ErrCodeInvalidQueryParameter, "Limit must be between 1 and 200")
)

package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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
	ErrNotFound              = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists         = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput          = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict   = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrPermissionDenied      = NewDomainError("PERMISSION_DENIED", "Not authorized to perform this action")
	ErrInvalidAssetReference = NewDomainError("INVALID_ASSET_REFERENCE", "Referenced asset does not exist")
	ErrInsufficientInventory = NewDomainError("INSUFFICIENT_INVENTORY", "Insufficient inventory in stock")
	ErrDuplicateMembership   = NewDomainError("DUPLICATE_MEMBERSHIP", "User already has a membership in this company")
	ErrCompanyHasAdmin       = NewDomainError("COMPANY_HAS_ADMIN", "Company already has an administrator")
	ErrNoMatchingCompany     = NewDomainError("NO_MATCHING_COMPANY", "No company matches the caller's email")
	ErrVehicleQuotaExceeded  = NewDomainError("VEHICLE_QUOTA_EXCEEDED", "Company has reached its vehicle limit")
	ErrTransient             = NewDomainError("TRANSIENT", "Transient conflict, the operation may be retried")
)

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code string) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == code
}

package errs

import "errors"

// Sentinels shared by the usecase and handler layers
var (
	// Order errors
	ErrOrderNotFound = errors.New("order not found")

	// Offer / pricing token errors
	ErrInvalidPricingToken = errors.New("invalid pricing token")
	ErrInvalidOffer        = errors.New("invalid offer")

	// Dependency errors
	ErrExternalDependency = errors.New("external dependency failure")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

package domain

import "errors"

// Token errors
var (
	ErrTokenInvalid      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token has expired")
	ErrTokenNotPersisted = errors.New("no persisted token")
)

// Session errors
var (
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Flow errors
var (
	ErrRequestInFlight = errors.New("request already in flight")
	ErrFlowTransition  = errors.New("invalid flow transition")
	ErrEmailRequired   = errors.New("email is required")
	ErrNameRequired    = errors.New("full name is required")
	ErrCodeRequired    = errors.New("verification code is required")
)

// Cart errors
var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Checkout errors
var (
	ErrCardNumberInvalid = errors.New("card number is too short")
	ErrCardExpiryInvalid = errors.New("card expiry must be MM/YY")
	ErrCardExpired       = errors.New("card has expired")
	ErrCardCVVInvalid    = errors.New("cvv must be at least 3 digits")
	ErrAddressIncomplete = errors.New("all address fields are required")
)

// Catalog errors
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrFetchSuperseded  = errors.New("fetch superseded by a newer request")
)

// Shopping list errors
var (
	ErrNoKeywords = errors.New("no usable keywords in shopping list")
)

// Backend errors
var (
	ErrMalformedResponse = errors.New("malformed backend response")
)

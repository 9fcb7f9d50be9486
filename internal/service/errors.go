package service

import "errors"

// Business-rule errors are deterministic: they are never retried and never
// leave partial state behind. Handlers map them to 4xx responses.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidAction     = errors.New("invalid stock action")
	ErrInvalidPayment    = errors.New("invalid payment method")
	ErrInvalidDiscount   = errors.New("discount exceeds sale subtotal")
	ErrSKUExists         = errors.New("SKU already exists")
	ErrBarcodeExists     = errors.New("barcode already exists")

	ErrSaleNotFound    = errors.New("sale not found")
	ErrSaleNotEditable = errors.New("only completed sales can be updated")
	ErrSaleFinalized   = errors.New("sale already cancelled or refunded")

	ErrHistoryNotFound = errors.New("history entry not found")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")

	// ErrConflict surfaces after the bounded retry loop gives up on
	// store-level serialization conflicts. Callers may retry the request.
	ErrConflict = errors.New("conflicting concurrent update, please retry")
)

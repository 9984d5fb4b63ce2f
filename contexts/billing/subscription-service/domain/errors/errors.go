package errors

import "errors"

var (
	ErrPackageNotFound        = errors.New("package not found")
	ErrInvalidPackageInput    = errors.New("invalid package input")
	ErrSubscriptionNotFound   = errors.New("subscription not found")
	ErrSubscriptionExists     = errors.New("user already has an active subscription")
	ErrSubscriptionNotExpired = errors.New("only expired subscriptions can be renewed")
	ErrPaymentFailed          = errors.New("payment was declined")
	ErrConfiguration          = errors.New("subscription configuration is broken")
	ErrInvalidInput           = errors.New("invalid subscription input")
)

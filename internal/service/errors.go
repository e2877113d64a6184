package service

import "errors"

// Error taxonomy for the payment lifecycle. Handlers map these onto HTTP
// statuses; everything unmatched is an internal error and, on the webhook
// path, tells the provider to redeliver.
var (
	ErrValidation       = errors.New("invalid request")
	ErrAlreadyPaid      = errors.New("gift item already paid")
	ErrNotFound         = errors.New("not found")
	ErrPaymentProvider  = errors.New("payment provider request failed")
	ErrInvalidSignature = errors.New("webhook signature verification failed")
)

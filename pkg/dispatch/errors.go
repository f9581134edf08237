package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for dispatching
var (
	ErrReceiverNotFound = errors.New("RECEIVER_NOT_FOUND")
	ErrDeliveryFailed   = errors.New("DELIVERY_FAILED")
	ErrInvalidManifest  = errors.New("INVALID_MANIFEST")
	ErrUnknownTransport = errors.New("UNKNOWN_TRANSPORT")
)

// ReceiverError wraps a failure to deliver to a single receiver
type ReceiverError struct {
	Receiver string
	Err      error
}

func (e *ReceiverError) Error() string {
	return fmt.Sprintf("receiver %s: %v", e.Receiver, e.Err)
}

func (e *ReceiverError) Unwrap() error {
	return e.Err
}

// DeliveryError is returned when every matching receiver failed
type DeliveryError struct {
	Action string
	Errs   []error
}

func (e *DeliveryError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%v: no receiver accepted %s: %s", ErrDeliveryFailed, e.Action, strings.Join(msgs, "; "))
}

func (e *DeliveryError) Unwrap() []error {
	return append([]error{ErrDeliveryFailed}, e.Errs...)
}

// ManifestError wraps a receiver manifest that could not be loaded
type ManifestError struct {
	Source string
	Err    error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("manifest %s: %v", e.Source, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

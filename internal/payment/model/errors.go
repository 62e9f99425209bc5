package model

import "github.com/festy23/street_sports/internal/apperror"

var (
	// ErrEventFree indicates checkout was requested for a free registration.
	ErrEventFree = apperror.New(apperror.KindInvalidRequest, "EVENT_FREE", "This registration is free, no payment needed")
	// ErrBelowMinimum indicates the fee is below what the processor accepts.
	// Responses carry minimumAmount and currentAmount.
	ErrBelowMinimum = apperror.New(apperror.KindInvalidRequest, "AMOUNT_BELOW_MINIMUM", "Amount is below the minimum accepted by the payment processor")
	// ErrProcessorNotConfigured indicates no processor key is set.
	ErrProcessorNotConfigured = apperror.New(apperror.KindPaymentProcessing, "PAYMENT_NOT_CONFIGURED", "Payment processing is not configured")
	// ErrProcessorFailed indicates the processor call failed.
	ErrProcessorFailed = apperror.New(apperror.KindPaymentProcessing, "PAYMENT_PROCESSOR_ERROR", "Payment processor error")
	// ErrSessionRequired indicates a paid registration was completed without a session.
	ErrSessionRequired = apperror.New(apperror.KindPaymentRequired, "PAYMENT_REQUIRED", "Payment required")
	// ErrSessionNotFound indicates the checkout session is unknown.
	ErrSessionNotFound = apperror.New(apperror.KindNotFound, "SESSION_NOT_FOUND", "Checkout session not found")
	// ErrSessionMismatch indicates the session belongs to another user, event or type.
	ErrSessionMismatch = apperror.New(apperror.KindInvalidRequest, "SESSION_MISMATCH", "Checkout session does not match this registration")
	// ErrPaymentIncomplete indicates the processor has not confirmed payment.
	ErrPaymentIncomplete = apperror.New(apperror.KindPaymentRequired, "PAYMENT_INCOMPLETE", "Payment has not been completed")
)

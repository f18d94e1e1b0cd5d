package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/gieseladev/wampio/message"
	"github.com/gieseladev/wampio/uri"
)

type paymentRequiredError struct {
	Amount int
}

func (e *paymentRequiredError) Error() string {
	return fmt.Sprintf("payment of %d required", e.Amount)
}

// sliceError is intentionally not comparable.
type sliceError []string

func (e sliceError) Error() string { return "multiple failures" }

func TestRegisterErrorResponse(t *testing.T) {
	r := NewRegistry()

	err := r.RegisterErrorResponse("com.example.payment_required", func(msg *message.Error) error {
		return &paymentRequiredError{Amount: 10}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := r.RegisterErrorResponse("not a uri", func(*message.Error) error { return nil }); err == nil {
		t.Error("expected invalid uri to be rejected")
	} else if !stderrors.Is(err, uri.ErrInvalid) {
		t.Errorf("expected uri.ErrInvalid, got %v", err)
	}

	if err := r.RegisterErrorResponse("com.example.ok", nil); err == nil {
		t.Error("expected nil factory to be rejected")
	}
}

func TestErrorToExceptionRegistered(t *testing.T) {
	r := NewRegistry()

	var seen *message.Error
	err := r.RegisterErrorResponse("com.example.payment_required", func(msg *message.Error) error {
		seen = msg
		return &paymentRequiredError{Amount: msg.Kwargs["amount"].(int)}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := &message.Error{
		URI:    "com.example.payment_required",
		Kwargs: message.Dict{"amount": 25},
	}

	got := r.ErrorToException(msg)

	var pre *paymentRequiredError
	if !stderrors.As(got, &pre) {
		t.Fatalf("expected *paymentRequiredError, got %T", got)
	}
	if pre.Amount != 25 {
		t.Errorf("factory did not receive the message: amount = %d", pre.Amount)
	}
	if seen != msg {
		t.Error("factory was not invoked with the exact message")
	}
}

func TestErrorToExceptionUnregistered(t *testing.T) {
	r := NewRegistry()

	msg := &message.Error{URI: "com.example.never_registered"}
	got := r.ErrorToException(msg)

	resp, ok := got.(*ErrorResponse)
	if !ok {
		t.Fatalf("expected *ErrorResponse, got %T", got)
	}
	if resp.Message != msg {
		t.Error("ErrorResponse should wrap the exact message")
	}
}

func TestErrorToExceptionLastRegistrationWins(t *testing.T) {
	r := NewRegistry()

	mustRegister := func(f ErrorFactory) {
		t.Helper()
		if err := r.RegisterErrorResponse("com.example.oops", f); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	mustRegister(func(*message.Error) error { return stderrors.New("first") })
	mustRegister(func(*message.Error) error { return stderrors.New("second") })

	got := r.ErrorToException(&message.Error{URI: "com.example.oops"})
	if got.Error() != "second" {
		t.Errorf("expected the last registered factory to win, got %q", got)
	}
}

func TestErrorToExceptionNilFactoryResult(t *testing.T) {
	r := NewRegistry()

	if err := r.RegisterErrorResponse("com.example.broken", func(*message.Error) error {
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := &message.Error{URI: "com.example.broken"}
	got := r.ErrorToException(msg)

	resp, ok := got.(*ErrorResponse)
	if !ok {
		t.Fatalf("expected fallback *ErrorResponse, got %T", got)
	}
	if resp.Message != msg {
		t.Error("fallback should wrap the exact message")
	}
}

func TestExceptionToInvocationErrorIdentity(t *testing.T) {
	r := NewRegistry()

	ie := NewInvocationError("com.example.oops", WithArgs("boom"))
	if got := r.ExceptionToInvocationError(ie); got != ie {
		t.Error("an InvocationError input must be returned unchanged")
	}
}

func TestExceptionToInvocationErrorAttachment(t *testing.T) {
	r := NewRegistry()

	failure := stderrors.New("database exploded")
	ie := NewInvocationError("com.example.db_error",
		WithKwargs(message.Dict{"table": "orders"}))

	r.SetInvocationError(failure, ie)

	if got := r.ExceptionToInvocationError(failure); got != ie {
		t.Error("attached invocation error must outrank registration and fallback")
	}

	r.ClearInvocationError(failure)

	got := r.ExceptionToInvocationError(failure)
	if got == ie {
		t.Error("cleared attachment must not be returned")
	}
	if got.URI() != uri.RuntimeError {
		t.Errorf("expected fallback uri, got %q", got.URI())
	}
}

func TestExceptionToInvocationErrorAttachmentOutranksRegistration(t *testing.T) {
	r := NewRegistry()

	if err := r.RegisterExceptionURI(&paymentRequiredError{}, "com.example.payment_required"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	failure := &paymentRequiredError{Amount: 10}
	attached := NewInvocationError("com.example.special_case")
	r.SetInvocationError(failure, attached)

	if got := r.ExceptionToInvocationError(failure); got != attached {
		t.Error("explicit attachment must outrank the outbound table")
	}
}

func TestExceptionToInvocationErrorRegisteredKind(t *testing.T) {
	r := NewRegistry()

	if err := r.RegisterExceptionURI(&paymentRequiredError{}, "com.example.payment_required"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	failure := &paymentRequiredError{Amount: 10}
	got := r.ExceptionToInvocationError(failure)

	if got.URI() != "com.example.payment_required" {
		t.Errorf("expected registered uri, got %q", got.URI())
	}
	if len(got.Args()) != 1 || got.Args()[0] != "payment of 10 required" {
		t.Errorf("expected the failure's message as positional payload, got %v", got.Args())
	}
	if got.Kwargs() != nil || got.Details() != nil {
		t.Error("registered-kind conversion must not invent kwargs or details")
	}
}

func TestExceptionToInvocationErrorFallback(t *testing.T) {
	r := NewRegistry()

	failure := stderrors.New("something else entirely")
	got := r.ExceptionToInvocationError(failure)

	if got.URI() != uri.RuntimeError {
		t.Errorf("expected %q, got %q", uri.RuntimeError, got.URI())
	}
	if len(got.Args()) != 1 || got.Args()[0] != "something else entirely" {
		t.Errorf("expected the failure's message as positional payload, got %v", got.Args())
	}
}

func TestSetInvocationErrorOverwritesInPlace(t *testing.T) {
	r := NewRegistry()

	target := NewInvocationError("com.example.first", WithArgs(1))
	e1 := NewInvocationError("com.example.second", WithArgs(2))
	e2 := NewInvocationError("com.example.third",
		WithArgs(3),
		WithDetails(message.Dict{"hint": "use e2"}))

	r.SetInvocationError(target, e1)
	r.SetInvocationError(target, e2)

	if target.URI() != e2.URI() {
		t.Errorf("expected uri %q, got %q", e2.URI(), target.URI())
	}
	if len(target.Args()) != 1 || target.Args()[0] != 3 {
		t.Errorf("expected args of e2, got %v", target.Args())
	}
	if target.Details()["hint"] != "use e2" {
		t.Errorf("expected details of e2, got %v", target.Details())
	}

	// Identity preserved: conversion still returns the original value.
	if got := r.ExceptionToInvocationError(target); got != target {
		t.Error("overwriting must preserve the target's identity")
	}
}

func TestSetInvocationErrorNonComparableTarget(t *testing.T) {
	r := NewRegistry()

	failure := sliceError{"a", "b"}
	ie := NewInvocationError("com.example.odd")

	// Attachment is skipped for non-comparable error values; conversion
	// falls through to the generic fallback instead of panicking.
	r.SetInvocationError(failure, ie)

	got := r.ExceptionToInvocationError(failure)
	if got.URI() != uri.RuntimeError {
		t.Errorf("expected fallback uri, got %q", got.URI())
	}
}

func TestExceptionURI(t *testing.T) {
	r := NewRegistry()

	if err := r.RegisterExceptionURI(&paymentRequiredError{}, "com.example.payment_required"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, err := r.ExceptionURI(&paymentRequiredError{Amount: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != "com.example.payment_required" {
		t.Errorf("unexpected uri %q", u)
	}

	_, err = r.ExceptionURI(stderrors.New("unknown"))
	if !stderrors.Is(err, ErrUnregistered) {
		t.Errorf("expected ErrUnregistered, got %v", err)
	}
}

func TestRegisterExceptionURIValidation(t *testing.T) {
	r := NewRegistry()

	if err := r.RegisterExceptionURI(nil, "com.example.ok"); err == nil {
		t.Error("expected nil sample to be rejected")
	}
	if err := r.RegisterExceptionURI(stderrors.New("x"), "bad uri"); err == nil {
		t.Error("expected invalid uri to be rejected")
	}
}

func TestDefaultRegistryDelegation(t *testing.T) {
	u := uri.MustParse("com.example.default_registry_test")

	if err := RegisterErrorResponse(u, func(msg *message.Error) error {
		return &paymentRequiredError{Amount: 1}
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := ErrorToException(&message.Error{URI: u})
	var pre *paymentRequiredError
	if !stderrors.As(got, &pre) {
		t.Fatalf("expected *paymentRequiredError, got %T", got)
	}
}

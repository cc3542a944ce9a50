package errx

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

func TestValueMismatch_Message(t *testing.T) {
	_, cause := strconv.ParseInt("asdf", 10, 64)
	err := ValueMismatch(2, "x", "asdf", cause)
	msg := err.Error()
	if !strings.Contains(msg, "record 2") {
		t.Fatalf("expected record number in %q", msg)
	}
	if !strings.Contains(msg, `"x"`) {
		t.Fatalf("expected path in %q", msg)
	}
	if !errors.Is(err, ErrValueMismatch) {
		t.Fatalf("expected errors.Is(ErrValueMismatch)")
	}
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Fatalf("expected cause to be reachable")
	}
}

func TestWrappedErrors_Is(t *testing.T) {
	deferred := DeferredDecode(3, "b", "[[1", errors.New("invalid JSON"))
	if !IsDeferredDecode(deferred) {
		t.Fatalf("expected IsDeferredDecode")
	}
	missing := MissingRequiredField(1, "owner.name")
	if !IsMissingRequiredField(missing) {
		t.Fatalf("expected IsMissingRequiredField")
	}
	if IsValueMismatch(missing) {
		t.Fatalf("unexpected IsValueMismatch")
	}
	shape := ShapeMismatch("expected %v, but had %v", "[]Foo", "Foo")
	if !IsShapeMismatch(shape) {
		t.Fatalf("expected IsShapeMismatch")
	}
	if strings.Contains(shape.Error(), "record") {
		t.Fatalf("shape mismatch is not record scoped: %v", shape)
	}
}

func TestWithRecord(t *testing.T) {
	err := WithRecord(MissingRequiredField(0, "year"), 4)
	if !strings.Contains(err.Error(), "record 4") {
		t.Fatalf("expected record 4 in %q", err.Error())
	}
	plain := errors.New("plain")
	if WithRecord(plain, 4) != plain {
		t.Fatalf("expected non csvx errors to pass through")
	}
}

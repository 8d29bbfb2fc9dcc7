package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrInvalidKey       = NewError("invalid mapping key")
	ErrDuplicateKey     = NewError("duplicate mapping key")
	ErrUnsupportedKind  = NewError("unsupported value kind")
	ErrMaxDepthExceeded = NewError("maximum nesting depth exceeded")
	ErrReadInput        = NewError("failed to read input")
	ErrDecode           = NewError("failed to decode input")
	ErrExprParse        = NewError("expression parse failed")
	ErrExprEvaluate     = NewError("expression evaluation failed")
	ErrIllegalSyntax    = NewError("illegal expression syntax")
	ErrUnresolved       = NewError("unresolved identifier")
	ErrUnknownFunction  = NewError("unknown function")
	ErrArity            = NewError("wrong number of arguments")
	ErrTypeMismatch     = NewError("operand type mismatch")
	ErrDivideByZero     = NewError("division by zero")
	ErrOverflow         = NewError("integer overflow")
)

// Error is the single error kind reported by this package.
//
// It carries an optional expression source, an optional wrapped cause, and
// attributes for structured logging. It implements both error and
// slog.LogValuer.
type Error struct {
	msg   string
	expr  string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
//
// The message is "<msg>: <cause>" followed by any attributes in brackets and
// the failing expression, when present.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	var sb strings.Builder

	sb.WriteString(strings.Join(part, ": "))

	if len(e.attrs) > 0 {
		sb.WriteString(" [")

		for i, a := range e.attrs {
			if i > 0 {
				sb.WriteByte(' ')
			}

			sb.WriteString(a.String())
		}

		sb.WriteByte(']')
	}

	if e.expr != "" && !e.wrapsExpr() {
		fmt.Fprintf(&sb, " in %q", e.expr)
	}

	return sb.String()
}

// wrapsExpr reports whether a wrapped Error already names the same expression,
// so that it is printed only once.
func (e *Error) wrapsExpr() bool {
	var inner *Error
	if !errors.As(e.err, &inner) {
		return false
	}

	return inner.Expression() == e.expr
}

// Is reports whether target is an Error with the same message.
// Wrapped and attributed copies of a sentinel therefore match the sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.msg == "" {
		return false
	}

	return t.msg == e.msg
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Expression returns the source text of the expression that failed, searching
// wrapped errors when e does not carry one itself.
func (e *Error) Expression() string {
	if e.expr != "" {
		return e.expr
	}

	var inner *Error
	if errors.As(e.err, &inner) {
		return inner.Expression()
	}

	return ""
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.expr != "" {
		attrs = append(attrs, slog.String("expression", e.expr))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		expr:  e.expr,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		expr:  e.expr,
		err:   e.err,
		attrs: newAttrs,
	}
}

// WithExpr returns a copy of the error that records the expression source.
func (e *Error) WithExpr(source string) *Error {
	return &Error{
		msg:   e.msg,
		expr:  source,
		err:   e.err,
		attrs: e.attrs,
	}
}

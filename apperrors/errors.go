package apperrors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies an error for the propagation policy: validation failures
// stay on the client side, signature failures reject the webhook, transport
// and upstream failures decide between user-visible errors and
// logged-and-continued dispatch.
type Kind string

const (
	KindValidation Kind = "validation"
	KindTransport  Kind = "transport"
	KindSignature  Kind = "signature"
	KindUpstream   Kind = "upstream"
)

// Error is an application error with an HTTP status and a classification.
type Error struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error.
func New(code int, kind Kind, message string, err error) *Error {
	return &Error{Code: code, Kind: kind, Message: message, Err: err}
}

// Validation wraps a refused-order failure. These never reach the payment
// provider.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, KindValidation, message, nil)
}

// Transport wraps a network/provider failure on the checkout path; surfaced
// to the end user as a retry prompt.
func Transport(message string, err error) *Error {
	return New(http.StatusBadGateway, KindTransport, message, err)
}

// Signature wraps a webhook authentication failure. Fail closed: no side
// effects, not retried.
func Signature(err error) *Error {
	return New(http.StatusBadRequest, KindSignature, "invalid webhook signature", err)
}

// Upstream wraps an image-store or messaging failure, isolated per channel.
func Upstream(message string, err error) *Error {
	return New(http.StatusInternalServerError, KindUpstream, message, err)
}

// Respond writes err as a JSON response. Unknown error types become opaque
// 500s.
func Respond(c *gin.Context, err error) {
	if appErr, ok := err.(*Error); ok {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

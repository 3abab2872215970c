package apperr

import (
	"errors"
	"strings"

	govalidator "github.com/go-playground/validator/v10"

	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/pkg/validator"
	"github.com/tuanvumaihuynh/poxpos/pkg/zerror"
)

const (
	MethodNotAllowedCode        = "METHOD_NOT_ALLOWED"
	MissingTokenCode            = "MISSING_TOKEN"
	InvalidTokenCode            = "INVALID_TOKEN"
	NotAuthorizedCode           = "NOT_AUTHORIZED"
	MissingBodyCode             = "MISSING_BODY"
	InvalidBodyCode             = "INVALID_BODY"
	ValidationErrorCode         = "VALIDATION_FAILED"
	UpstreamRejectedCode        = "UPSTREAM_REJECTED"
	UpstreamUnauthenticatedCode = "UPSTREAM_UNAUTHENTICATED"
	UpstreamForbiddenCode       = "UPSTREAM_FORBIDDEN"
	UpstreamUnavailableCode     = "UPSTREAM_UNAVAILABLE"
	UnexpectedCode              = "UNEXPECTED"
	HealthCheckFailedCode       = "HEALTH_CHECK_FAILED"
)

var (
	MethodNotAllowedErr = zerror.NewMethodNotAllowed(MethodNotAllowedCode, "Method not allowed.")
	MissingTokenErr     = zerror.NewUnauthorized(MissingTokenCode, "Missing auth token.")
	InvalidTokenErr     = zerror.NewUnauthorized(InvalidTokenCode, "Invalid auth token.")
	NotAuthorizedErr    = zerror.NewForbidden(NotAuthorizedCode, "Not authorized.")
	MissingBodyErr      = zerror.NewBadRequest(MissingBodyCode, "Missing request body.")
	InvalidBodyErr      = zerror.NewBadRequest(InvalidBodyCode, "Invalid JSON body.")
	ValidationErr       = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	UpstreamRejectedErr        = zerror.NewBadRequest(UpstreamRejectedCode, "Request failed.")
	UpstreamUnauthenticatedErr = zerror.NewUnauthorized(UpstreamUnauthenticatedCode, "Not authenticated")
	UpstreamForbiddenErr       = zerror.NewForbidden(UpstreamForbiddenCode, "Not allowed")
	UpstreamUnavailableErr     = zerror.NewInternalServerError(UpstreamUnavailableCode, "Request failed.")
	UnexpectedErr              = zerror.NewInternalServerError(UnexpectedCode, "Unexpected server error.")
	HealthCheckFailedErr       = zerror.NewServiceUnavailable(HealthCheckFailedCode, "Gateway unavailable.")
)

const (
	markerNotAuthenticated = "Not authenticated"
	markerNotAllowed       = "Not allowed"
	fallbackMessage        = "Request failed."
)

// Classify maps a message reported by a database procedure to the error
// returned to the client. The message is kept verbatim.
func Classify(message string) zerror.ZError {
	switch {
	case message == "":
		return UpstreamRejectedErr.WithMsg(fallbackMessage)
	case strings.Contains(message, markerNotAuthenticated):
		return UpstreamUnauthenticatedErr.WithMsg(message)
	case strings.Contains(message, markerNotAllowed):
		return UpstreamForbiddenErr.WithMsg(message)
	default:
		return UpstreamRejectedErr.WithMsg(message)
	}
}

// FromCall translates a failed procedure call.
func FromCall(err error) error {
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		return Classify(gwErr.Message).WrapParent(err)
	}
	return fromTransport(err)
}

// FromWrite translates a failed table write. Rejections keep the upstream message.
func FromWrite(err error) error {
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		msg := gwErr.Message
		if msg == "" {
			msg = fallbackMessage
		}
		return UpstreamRejectedErr.WithMsg(msg).WrapParent(err)
	}
	return fromTransport(err)
}

func fromTransport(err error) error {
	if errors.Is(err, gateway.ErrUnavailable) {
		return UpstreamUnavailableErr.WrapParent(err)
	}
	return UnexpectedErr.WrapParent(err)
}

// Validation turns the result of validating s into a client error naming the
// first failed field. Other errors pass through unchanged.
func Validation(s any, err error) error {
	if err == nil {
		return nil
	}

	var validationErrs govalidator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	return ValidationErr.WithMsg(validator.FieldMessage(s, validationErrs[0])).WrapParent(err)
}

package delivery

import "errors"

// Failure classes. They never reach callers of Post or PostWithResponse; they
// are exposed to Result hooks, logs and metric labels.
var (
	ErrNotConfigured = errors.New("delivery.not_configured")
	ErrDisabled      = errors.New("delivery.disabled")
	ErrEncode        = errors.New("delivery.encode_failed")
	ErrRequest       = errors.New("delivery.invalid_request")
	ErrTransport     = errors.New("delivery.transport_failed")
	ErrTimeout       = errors.New("delivery.timeout")
	ErrStatus        = errors.New("delivery.unexpected_status")
	ErrDecode        = errors.New("delivery.decode_failed")
	ErrCircuitOpen   = errors.New("delivery.circuit_open")
)

// Outcome label values.
const (
	OutcomeSuccess        = "success"
	OutcomeNotConfigured  = "not_configured"
	OutcomeDisabled       = "disabled"
	OutcomeEncodeError    = "encode_error"
	OutcomeRequestError   = "request_error"
	OutcomeTransportError = "transport_error"
	OutcomeTimeout        = "timeout"
	OutcomeStatusError    = "status_error"
	OutcomeDecodeError    = "decode_error"
	OutcomeCircuitOpen    = "circuit_open"
)

// Outcome maps an error produced by the client to its metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrNotConfigured):
		return OutcomeNotConfigured
	case errors.Is(err, ErrDisabled):
		return OutcomeDisabled
	case errors.Is(err, ErrEncode):
		return OutcomeEncodeError
	case errors.Is(err, ErrRequest):
		return OutcomeRequestError
	case errors.Is(err, ErrTimeout):
		return OutcomeTimeout
	case errors.Is(err, ErrStatus):
		return OutcomeStatusError
	case errors.Is(err, ErrDecode):
		return OutcomeDecodeError
	case errors.Is(err, ErrCircuitOpen):
		return OutcomeCircuitOpen
	default:
		return OutcomeTransportError
	}
}

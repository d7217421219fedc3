package constants

const MessageErrorFormat = "The '%s' field is missing or invalid"

const (
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeInvalidRequestBody  = "INVALID_REQUEST_BODY"
	ErrCodeEndpointUnavailable = "ENDPOINT_UNAVAILABLE"
	ErrCodeRouteNotFound       = "ROUTE_NOT_FOUND"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

const (
	ErrMsgValidationFailed    = "validation failed"
	ErrMsgInvalidRequestBody  = "failed to parse request body"
	ErrMsgEndpointUnavailable = "banking service endpoint is not configured"
	ErrMsgRouteNotFound       = "route not found"
	ErrMsgInternalError       = "Internal server error"
)

var errorMessages = map[string]string{
	ErrCodeValidationFailed:    ErrMsgValidationFailed,
	ErrCodeInvalidRequestBody:  ErrMsgInvalidRequestBody,
	ErrCodeEndpointUnavailable: ErrMsgEndpointUnavailable,
	ErrCodeRouteNotFound:       ErrMsgRouteNotFound,
	ErrCodeInternalError:       ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody:
		return 400
	case ErrCodeRouteNotFound:
		return 404
	case ErrCodeValidationFailed:
		return 422
	case ErrCodeEndpointUnavailable:
		return 503
	default:
		return 500
	}
}

package contract

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func NewError(code string, cause error) error {
	return Error{
		Code:  code,
		Cause: cause,
	}
}

// Error carries a portal error code to the fiber error handler.
type Error struct {
	Code  string
	Cause error
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}

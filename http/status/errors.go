package status

// HTTPError is an error which is going to be rendered as a well-formed response with
// its code and a templated body carrying the message.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

// Messages of the predefined errors are rendered as they are, so they carry the code too.
var (
	ErrBadRequest              = NewError(BadRequest, "400 Bad Request")
	ErrNotFound                = NewError(NotFound, "404 Not Found")
	ErrMethodNotAllowed        = NewError(MethodNotAllowed, "405 Method Not Allowed")
	ErrBodyTooLarge            = NewError(RequestEntityTooLarge, "413 Request Entity Too Large")
	ErrInternalServerError     = NewError(InternalServerError, "500 Internal Server Error")
	ErrServiceUnavailable      = NewError(ServiceUnavailable, "503 Too many connections")
	ErrUnprocessableEntity     = NewError(UnprocessableEntity, "422 Unprocessable Entity")
	ErrUnsupportedMediaType    = NewError(UnsupportedMediaType, "415 Unsupported Media Type")
	ErrRequestTimeout          = NewError(RequestTimeout, "408 Request Timeout")
	ErrHTTPVersionNotSupported = NewError(HTTPVersionNotSupported, "505 HTTP Version Not Supported")
)

package client

import (
	"fmt"

	"github.com/indigo-web/lite/http/headers"
	"github.com/indigo-web/lite/http/status"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

// Response is a complete response. Header keys are stored lower-cased, though the lookup
// is case-insensitive anyway.
type Response struct {
	Code    status.Code
	Headers *headers.Headers
	Body    []byte
}

// failure is the response returned when every attempt failed.
func failure(err error) Response {
	return Response{
		Code:    status.InternalServerError,
		Headers: headers.New(),
		Body:    []byte(err.Error()),
	}
}

// Text returns the body as a string. The string shares the memory with the body.
func (r Response) Text() string {
	return uf.B2S(r.Body)
}

// JSON decodes the body into the model.
func (r Response) JSON(model any) error {
	return json.ConfigDefault.Unmarshal(r.Body, model)
}

func (r Response) String() string {
	return fmt.Sprintf("<Response %d %d bytes>", r.Code, len(r.Body))
}

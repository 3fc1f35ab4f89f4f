package lite

import (
	"fmt"

	"github.com/indigo-web/lite/http"
	"github.com/indigo-web/lite/http/status"
	"github.com/rs/zerolog"
)

type hooks struct {
	before []BeforeHook
	after  []AfterHook
	error  []ErrorHook
}

func (h hooks) runBefore(request *http.Request, log zerolog.Logger) {
	for _, hook := range h.before {
		if err := guard(func() error { return hook(request) }); err != nil {
			log.Warn().Err(err).Msg("before hook failed")
		}
	}
}

func (h hooks) runAfter(request *http.Request, log zerolog.Logger) {
	code := request.Code()
	for _, hook := range h.after {
		if err := guard(func() error { return hook(request, code) }); err != nil {
			log.Warn().Err(err).Msg("after hook failed")
		}
	}
}

func (h hooks) runError(request *http.Request, code status.Code, message string, log zerolog.Logger) {
	for _, hook := range h.error {
		if err := guard(func() error { return hook(request, code, message) }); err != nil {
			log.Warn().Err(err).Msg("error hook failed")
		}
	}
}

// guard calls the function, converting a panic into an error.
func guard(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return f()
}

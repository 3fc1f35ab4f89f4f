package lite

import (
	"errors"
	"io"
	"net"
	"os"
	"syscall"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/lite/http"
	"github.com/indigo-web/lite/http/method"
	"github.com/indigo-web/lite/http/mime"
	"github.com/indigo-web/lite/http/status"
	"github.com/indigo-web/lite/internal/protocol/http1"
	"github.com/indigo-web/lite/transport"
	"github.com/rs/zerolog"
)

// serveConn serves exactly one request off the connection. Whatever happens, after-hooks
// run first, then the connection is closed and only then the admission slot is released.
func (a *App) serveConn(conn net.Conn) {
	var (
		id         = uniuri.New()
		client     = transport.NewClient(conn, a.cfg.NET)
		serializer = http1.NewSerializer(client, make([]byte, 0, 512))
		log        = a.logger.With().Str("conn", id).Stringer("remote", conn.RemoteAddr()).Logger()
	)

	if !a.admission.Acquire(id) {
		a.reject(client, serializer, log)
		return
	}

	defer a.admission.Release(id)
	defer client.Close()

	request := http.NewRequest(id, client, serializer)
	defer func() {
		a.hooks.runAfter(request, log)
	}()

	a.handle(request, client, log)
}

// reject responds with 503 without reading anything.
func (a *App) reject(client transport.Client, serializer *http1.Serializer, log zerolog.Logger) {
	defer client.Close()

	log.Warn().Msg("too many connections, rejecting")
	body := errorPage(status.ErrServiceUnavailable.Error())
	err := serializer.WriteHead(http.Head{
		Code:        status.ServiceUnavailable,
		ContentType: mime.HTML,
		Length:      int64(len(body)),
	})
	if err == nil {
		err = client.Write(body)
	}

	if err != nil {
		log.Debug().Err(err).Msg("failed to reject")
	}
}

func (a *App) handle(request *http.Request, client transport.Client, log zerolog.Logger) {
	if err := http1.NewParser(a.cfg, client).Parse(request); err != nil {
		var httpErr status.HTTPError
		if errors.As(err, &httpErr) {
			a.fail(request, err, log)
			return
		}

		log.Debug().Err(err).Msg("request aborted")
		return
	}

	log = log.With().
		Stringer("method", request.Method).
		Str("path", request.Path).
		Logger()

	a.hooks.runBefore(request, log)

	if request.Method == method.OPTIONS {
		if err := request.Respond(http.Head{Code: status.NoContent, Length: -1}); err != nil {
			log.Debug().Err(err).Msg("failed to respond")
		}

		return
	}

	if err := a.dispatch(request); err != nil {
		a.fail(request, err, log)
		return
	}

	log.Debug().Uint16("code", uint16(request.Code())).Msg("served")
}

// dispatch calls the route handler or, if none matched, the static responder. A missing
// static file isn't a failure, so its 404 page bypasses the error hooks.
func (a *App) dispatch(request *http.Request) error {
	handler, found := a.router.Lookup(request.Path, request.Method)
	if !found {
		err := a.static.Serve(request)
		if errors.Is(err, status.ErrNotFound) && !request.Sent() {
			return respond(request, status.NotFound, mime.HTML, errorPage(status.ErrNotFound.Error()))
		}

		return err
	}

	var result http.Result
	err := guard(func() (err error) {
		result, err = handler(request)
		return err
	})
	if err != nil {
		return err
	}

	contentType, body, err := result.Render()
	if err != nil || result.Kind == http.KindWritten {
		return err
	}

	return respond(request, status.OK, contentType, body)
}

// fail reports the error to the error hooks and renders it, if possible. Transport errors
// are only logged, as the connection is broken anyway.
func (a *App) fail(request *http.Request, err error, log zerolog.Logger) {
	if isTransportError(err) {
		log.Warn().Err(err).Msg("connection error")
		return
	}

	var httpErr status.HTTPError
	if !errors.As(err, &httpErr) {
		log.Error().Err(err).Msg("handler failed")
		a.hooks.runError(request, status.InternalServerError, err.Error(), log)
		httpErr = status.ErrInternalServerError.(status.HTTPError)
	} else {
		a.hooks.runError(request, httpErr.Code, httpErr.Message, log)
	}

	if request.Sent() {
		log.Warn().Err(err).Msg("response already started, can't render the error")
		return
	}

	if err = respond(request, httpErr.Code, mime.HTML, errorPage(httpErr.Message)); err != nil {
		log.Debug().Err(err).Msg("failed to render the error")
	}
}

func respond(request *http.Request, code status.Code, contentType mime.MIME, body []byte) error {
	if err := request.WriteHead(code, contentType, int64(len(body))); err != nil {
		return err
	}

	return request.Write(body)
}

func errorPage(message string) []byte {
	return []byte("<h1>" + message + "</h1>")
}

func isTransportError(err error) bool {
	var netErr net.Error

	return errors.As(err, &netErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, os.ErrDeadlineExceeded) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE)
}

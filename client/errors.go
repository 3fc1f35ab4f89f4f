package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
)

// Every error of a single attempt wraps exactly one of these.
var (
	// ErrConnect means the host couldn't be resolved or connected to.
	ErrConnect = errors.New("connect error")
	// ErrTimeout means a bounded operation exceeded its deadline.
	ErrTimeout = errors.New("timeout")
	// ErrProtocol means the peer sent something unparseable.
	ErrProtocol = errors.New("protocol error")
	// ErrTransport means the connection broke in the middle of a read or a write.
	ErrTransport = errors.New("transport error")
)

var (
	ErrHeaderTooLarge   error = protocolError("response head is too large")
	ErrBadChunk         error = protocolError("malformed chunk")
	ErrBodyTooLarge     error = protocolError("body exceeds the fallback buffer")
	ErrBadContentLength error = protocolError("malformed Content-Length")
)

var errNothingReceived = fmt.Errorf("%w: connection closed before the response", ErrTransport)

type protocolError string

func (p protocolError) Error() string {
	return "protocol error: " + string(p)
}

func (p protocolError) Is(target error) bool {
	return target == ErrProtocol
}

// classify wraps the error into the matching class. Errors which are already classified
// are returned as-is, unknown ones fall into the fallback.
func classify(ctx context.Context, err, fallback error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrConnect), errors.Is(err, ErrTimeout),
		errors.Is(err, ErrProtocol), errors.Is(err, ErrTransport):
		return err
	case isTimeout(err), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %w", fallback, err)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

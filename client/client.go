package client

import (
	"context"
	"time"

	"github.com/indigo-web/lite/config"
	"github.com/indigo-web/lite/transport"
	"github.com/rs/zerolog"
)

// Client performs GET requests. Every request is made over its own connection, which is
// closed as soon as the response is read.
type Client struct {
	cfg         config.Client
	maxHeadSize int
	dialer      *transport.Dialer
	logger      zerolog.Logger
}

type Option func(*Client)

// WithLogger sets the logger failed attempts are reported to.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDialer replaces the dialer, e.g. in order to set a custom resolver or TLS config.
func WithDialer(dialer *transport.Dialer) Option {
	return func(c *Client) {
		c.dialer = dialer
	}
}

func New(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		cfg:         cfg.Client,
		maxHeadSize: cfg.Headers.MaxHeadSize,
		dialer:      transport.NewDialer(cfg.NET),
		logger:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Perform is PerformWith using the client's own config.
func (c *Client) Perform(ctx context.Context, url string) Response {
	return c.PerformWith(ctx, url, c.cfg)
}

// PerformWith requests the URL, retrying failed attempts. It never fails: if all the
// attempts failed, a response with the 500 code and the last error message as the body
// is returned.
func (c *Client) PerformWith(ctx context.Context, url string, cfg config.Client) Response {
	u, err := ParseURL(url)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", url).Msg("bad url")
		return failure(err)
	}

	attempts := max(cfg.Retries, 1)

	for attempt := 1; ; attempt++ {
		var resp Response
		resp, err = c.Fetch(ctx, u, cfg)
		if err == nil {
			return resp
		}

		c.logger.Warn().
			Err(err).
			Str("url", url).
			Int("attempt", attempt).
			Msg("request failed")

		if attempt >= attempts || !sleep(ctx, cfg.Backoff) {
			return failure(err)
		}
	}
}

// Fetch makes a single attempt, bounded by the timeout as a whole. The returned error
// wraps one of ErrConnect, ErrTimeout, ErrProtocol or ErrTransport.
func (c *Client) Fetch(ctx context.Context, u URL, cfg config.Client) (Response, error) {
	ctx, cancel := withTimeout(ctx, cfg.Timeout)
	defer cancel()

	conn, err := c.dialer.Open(ctx, u.Host, u.Port, u.Secure)
	if err != nil {
		return Response{}, classify(ctx, err, ErrConnect)
	}

	defer conn.Close()
	// closing the connection interrupts a pending read on cancellation
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	deadline, _ := ctx.Deadline()
	resp, err := c.exchange(conn, deadline, u, cfg)
	return resp, classify(ctx, err, ErrTransport)
}

func (c *Client) exchange(
	conn transport.Client, deadline time.Time, u URL, cfg config.Client,
) (Response, error) {
	if err := conn.Write(renderRequest(make([]byte, 0, 128), u, cfg.Headers)); err != nil {
		return Response{}, err
	}

	head, err := readHead(conn, deadline, c.maxHeadSize)
	if err != nil {
		return Response{}, err
	}

	code, hdrs := parseHead(head)
	strategy := chooseStrategy(hdrs, cfg.FallbackBufferSize)
	body, err := bodyReader{client: conn, deadline: deadline}.read(strategy, hdrs, cfg.FallbackBufferSize)
	if err != nil {
		return Response{}, err
	}

	c.logger.Debug().
		Str("url", u.String()).
		Uint16("code", uint16(code)).
		Stringer("body", strategy).
		Int("size", len(body)).
		Msg("response")

	return Response{
		Code:    code,
		Headers: hdrs,
		Body:    body,
	}, nil
}

// Perform requests the URL with the default config, overriding the number of retries,
// the per-attempt timeout and the fallback buffer size.
func Perform(ctx context.Context, url string, retries int, timeout time.Duration, fallback int) Response {
	cfg := config.Default()
	cfg.Client.Retries = retries
	cfg.Client.Timeout = timeout
	cfg.Client.FallbackBufferSize = fallback

	return New(cfg).Perform(ctx, url)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}

// sleep pauses for the duration, returning false if the context was done earlier.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

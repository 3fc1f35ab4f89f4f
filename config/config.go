package config

import (
	"time"
)

type (
	// Server describes the listening side of the engine.
	Server struct {
		// Address is the interface the server binds to.
		Address string
		// Port is the plain-text listening port.
		Port uint16
		// MaxConnections is the hard cap of concurrently admitted connections. Every
		// connection above it gets 503 Service Unavailable before its request line is read.
		MaxConnections int
	}

	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket. It also bounds how many bytes a single read may bring in.
		ReadBufferSize int
		// ReadTimeout bounds every single read: a request line, a header line or a body chunk.
		// Expiry aborts the connection silently.
		ReadTimeout time.Duration
		// WriteTimeout bounds every single write.
		WriteTimeout time.Duration
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop. Defaults to 5 seconds.
		AcceptLoopInterruptPeriod time.Duration
	}

	Headers struct {
		// MaxLineSize limits the length of a request line or a single header line.
		MaxLineSize int
		// MaxNumber is the maximal number of request headers. Exceeding it aborts the connection.
		MaxNumber int
		// MaxHeadSize limits the head (the request or the status line together with the
		// headers) buffered by both the server and the client.
		MaxHeadSize int
	}

	Body struct {
		// MaxSize is the maximal request body the server is willing to accept. Bigger
		// Content-Length results in 413 Request Entity Too Large.
		MaxSize int
	}

	Static struct {
		// Root is the directory static files are served from.
		Root string
		// ChunkSize is the size of pieces files are streamed with.
		ChunkSize int
	}

	Client struct {
		// Retries is the number of attempts before giving up. Values below 1 are treated as 1.
		Retries int
		// Timeout bounds a whole attempt: connect, request and the complete body read.
		Timeout time.Duration
		// FallbackBufferSize bounds bodies that carry neither chunked encoding nor Content-Length.
		// Zero means no bound (the body is accumulated until the peer closes the stream).
		FallbackBufferSize int `test:"nullable"`
		// Backoff is the pause between two failed attempts.
		Backoff time.Duration
		// Headers are included into every request in addition to Host and Connection.
		Headers map[string]string `test:"nullable"`
	}
)

// Config holds settings used across the engine, mainly restrictions, limitations
// and timeouts.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	Server  Server
	NET     NET
	Headers Headers
	Body    Body
	Static  Static
	Client  Client
}

// Default returns default config. The values are tuned for small devices: tiny buffers,
// short timeouts and a low connections cap.
func Default() *Config {
	return &Config{
		Server: Server{
			Address:        "0.0.0.0",
			Port:           80,
			MaxConnections: 10,
		},
		NET: NET{
			ReadBufferSize:            512,
			ReadTimeout:               5 * time.Second,
			WriteTimeout:              5 * time.Second,
			AcceptLoopInterruptPeriod: 5 * time.Second,
		},
		Headers: Headers{
			MaxLineSize: 2048,
			MaxNumber:   50,
			// a head above 2kb is treated as malformed
			MaxHeadSize: 2048,
		},
		Body: Body{
			MaxSize: 16 * 1024,
		},
		Static: Static{
			Root:      "./html",
			ChunkSize: 512,
		},
		Client: Client{
			Retries: 3,
			Timeout: 5 * time.Second,
			Backoff: time.Second,
		},
	}
}

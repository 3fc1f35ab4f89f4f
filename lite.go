package lite

import (
	"crypto/tls"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/indigo-web/lite/config"
	"github.com/indigo-web/lite/http"
	"github.com/indigo-web/lite/http/method"
	"github.com/indigo-web/lite/http/status"
	"github.com/indigo-web/lite/internal/admission"
	"github.com/indigo-web/lite/router"
	"github.com/indigo-web/lite/transport"
	"github.com/rs/zerolog"
)

type (
	Handler = http.Handler
	// BeforeHook is called before the request is dispatched. Its failure is logged, but
	// doesn't affect the request.
	BeforeHook func(request *http.Request) error
	// AfterHook is called after the response is written, on every exit path, with the
	// final status code.
	AfterHook func(request *http.Request, code status.Code) error
	// ErrorHook is called when the handler or the static responder failed.
	ErrorHook func(request *http.Request, code status.Code, message string) error
)

// App is the HTTP server. Routes, hooks and listeners must be set up before Serve is called.
type App struct {
	cfg        *config.Config
	logger     zerolog.Logger
	router     *router.Router
	static     *router.Static
	admission  *admission.Set
	hooks      hooks
	listeners  []listener
	supervisor transport.Supervisor
	onStart    func()
	onStop     func()
}

type listener struct {
	port      uint16
	transport transport.Transport
}

// New returns a new App instance. Passing nil results in the default config.
func New(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}

	return &App{
		cfg:        cfg,
		logger:     zerolog.Nop(),
		router:     router.New(),
		static:     router.NewStatic(cfg.Static),
		admission:  admission.New(cfg.Server.MaxConnections),
		supervisor: transport.NewSupervisor(),
	}
}

// Logger replaces the default logger, which discards everything.
func (a *App) Logger(logger zerolog.Logger) *App {
	a.logger = logger
	return a
}

// Route registers the handler for the path. Only GET is allowed if no methods are passed.
// The path "*" catches everything other routes didn't.
func (a *App) Route(path string, handler Handler, methods ...method.Method) *App {
	a.router.Route(path, handler, methods...)
	return a
}

func (a *App) Before(hook BeforeHook) *App {
	a.hooks.before = append(a.hooks.before, hook)
	return a
}

func (a *App) After(hook AfterHook) *App {
	a.hooks.after = append(a.hooks.after, hook)
	return a
}

func (a *App) OnError(hook ErrorHook) *App {
	a.hooks.error = append(a.hooks.error, hook)
	return a
}

// Listen adds a listener on the port in addition to the plain one from the config.
func (a *App) Listen(port uint16, t transport.Transport) *App {
	a.listeners = append(a.listeners, listener{
		port:      port,
		transport: t,
	})

	return a
}

// HTTPS adds a TLS listener serving the certificates.
func (a *App) HTTPS(port uint16, certs ...tls.Certificate) *App {
	return a.Listen(port, transport.NewTLS(certs...))
}

// AutoHTTPS adds a TLS listener obtaining certificates for the domains via ACME. The
// certificates are cached in the user's cache directory.
func (a *App) AutoHTTPS(port uint16, domains ...string) *App {
	return a.Listen(port, transport.AutoTLS(autocertCache(), domains...))
}

// NotifyOnStart calls the callback as soon as every listener is bound.
func (a *App) NotifyOnStart(cb func()) *App {
	a.onStart = cb
	return a
}

// NotifyOnStop calls the callback after all the listeners are down and every connection
// is served.
func (a *App) NotifyOnStop(cb func()) *App {
	a.onStop = cb
	return a
}

// Serve binds all the listeners and blocks until one of them fails or Stop is called.
func (a *App) Serve() error {
	addr := a.addr(a.cfg.Server.Port)
	if err := a.supervisor.Add(addr, transport.NewTCP(), a.serveConn); err != nil {
		return err
	}

	for _, l := range a.listeners {
		if err := a.supervisor.Add(a.addr(l.port), l.transport, a.serveConn); err != nil {
			return err
		}
	}

	for _, bound := range a.supervisor.Addrs() {
		a.logger.Info().Stringer("addr", bound).Msg("listening")
	}

	callIfNotNil(a.onStart)
	err := a.supervisor.Run(a.cfg.NET)
	callIfNotNil(a.onStop)

	return err
}

// Stop stops accepting new connections and blocks until all the live ones are served.
func (a *App) Stop() {
	a.supervisor.Stop()
}

// Addrs returns the addresses of all bound listeners, the plain one first.
func (a *App) Addrs() []net.Addr {
	return a.supervisor.Addrs()
}

func (a *App) addr(port uint16) string {
	return net.JoinHostPort(a.cfg.Server.Address, strconv.Itoa(int(port)))
}

func autocertCache() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}

	return filepath.Join(dir, "lite-autocert")
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}

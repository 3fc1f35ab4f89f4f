package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/indigo-web/lite/config"
)

// Dialer opens client connections. Name resolution goes through the resolver with the
// caller's context, so it's bounded by the same deadline as the connect itself and can't
// stall the caller indefinitely.
type Dialer struct {
	cfg      config.NET
	resolver *net.Resolver
	tls      *tls.Config
}

func NewDialer(cfg config.NET) *Dialer {
	return &Dialer{
		cfg:      cfg,
		resolver: net.DefaultResolver,
	}
}

// WithTLS sets the base TLS config for secure connections. ServerName is always
// overridden by the dialed host.
func (d *Dialer) WithTLS(cfg *tls.Config) *Dialer {
	d.tls = cfg
	return d
}

// WithResolver replaces the default resolver.
func (d *Dialer) WithResolver(r *net.Resolver) *Dialer {
	d.resolver = r
	return d
}

// Open resolves the host and connects to the first address accepting the connection. If
// secure is set, the TLS handshake is done before returning.
func (d *Dialer) Open(ctx context.Context, host string, port uint16, secure bool) (Client, error) {
	addrs, err := d.resolve(ctx, host)
	if err != nil {
		return nil, err
	}

	var (
		dialer net.Dialer
		conn   net.Conn
		errs   []error
	)

	for _, addr := range addrs {
		conn, err = dialer.DialContext(ctx, "tcp", net.JoinHostPort(addr, strconv.Itoa(int(port))))
		if err == nil {
			break
		}

		errs = append(errs, err)
	}

	if conn == nil {
		return nil, fmt.Errorf("connect %s: %w", host, errors.Join(errs...))
	}

	if secure {
		tlsConn := tls.Client(conn, d.tlsConfig(host))
		if err = tlsConn.HandshakeContext(ctx); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("tls handshake with %s: %w", host, err)
		}

		conn = tlsConn
	}

	return NewClient(conn, d.cfg), nil
}

func (d *Dialer) resolve(ctx context.Context, host string) ([]string, error) {
	if net.ParseIP(host) != nil {
		return []string{host}, nil
	}

	addrs, err := d.resolver.LookupHost(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", host, err)
	}

	if len(addrs) == 0 {
		return nil, fmt.Errorf("resolve %s: no addresses", host)
	}

	return addrs, nil
}

func (d *Dialer) tlsConfig(host string) *tls.Config {
	var cfg *tls.Config
	if d.tls != nil {
		cfg = d.tls.Clone()
	} else {
		cfg = new(tls.Config)
	}

	cfg.ServerName = host
	return cfg
}

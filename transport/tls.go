package transport

import (
	"crypto/tls"
	"net"

	"golang.org/x/crypto/acme/autocert"
)

type TLS struct {
	cfg *tls.Config
	TCP
}

// NewTLS returns a transport serving TLS with static certificates.
func NewTLS(certs ...tls.Certificate) *TLS {
	return &TLS{
		cfg: &tls.Config{Certificates: certs},
	}
}

// AutoTLS returns a transport obtaining certificates via ACME for the given domains. The
// certificates are cached in the cacheDir.
func AutoTLS(cacheDir string, domains ...string) *TLS {
	m := &autocert.Manager{
		Prompt: autocert.AcceptTOS,
		Cache:  autocert.DirCache(cacheDir),
	}

	if len(domains) > 0 {
		m.HostPolicy = autocert.HostWhitelist(domains...)
	}

	return &TLS{cfg: m.TLSConfig()}
}

func (t *TLS) Bind(addr string) error {
	tcp, err := bindTCP(addr)
	if err != nil {
		return err
	}

	l := tls.NewListener(tcp, t.cfg)
	t.TCP = newTCP(tlsAdapter{tcp, l})

	return nil
}

type tlsAdapter struct {
	*net.TCPListener
	tls net.Listener
}

func (t tlsAdapter) Accept() (net.Conn, error) {
	return t.tls.Accept()
}

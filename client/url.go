package client

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// URL is the decomposed target of a request.
type URL struct {
	Secure bool
	Host   string
	Port   uint16
	Path   string
}

// ParseURL decomposes the URL. https:// implies a secure connection to the port 443,
// anything else is a plain connection to the port 80. An explicit port overrides the default
// one. The path defaults to the root.
func ParseURL(raw string) (URL, error) {
	u := URL{Port: 80, Path: "/"}

	switch {
	case strings.HasPrefix(raw, "https://"):
		u.Secure, u.Port = true, 443
		raw = raw[len("https://"):]
	case strings.HasPrefix(raw, "http://"):
		raw = raw[len("http://"):]
	}

	hostport, path, found := strings.Cut(raw, "/")
	if found {
		u.Path = "/" + path
	}

	u.Host = hostport
	if colon := strings.LastIndexByte(hostport, ':'); colon != -1 && !strings.HasSuffix(hostport, "]") {
		host, port, err := net.SplitHostPort(hostport)
		if err != nil {
			return URL{}, fmt.Errorf("%w: %w", ErrConnect, err)
		}

		num, err := strconv.ParseUint(port, 10, 16)
		if err != nil || num == 0 {
			return URL{}, fmt.Errorf("%w: bad port %q", ErrConnect, port)
		}

		u.Host, u.Port = host, uint16(num)
	}

	u.Host = strings.Trim(u.Host, "[]")
	if len(u.Host) == 0 {
		return URL{}, fmt.Errorf("%w: empty host", ErrConnect)
	}

	return u, nil
}

func (u URL) defaultPort() bool {
	return (u.Secure && u.Port == 443) || (!u.Secure && u.Port == 80)
}

// HostHeader returns the value of the Host header. The port is included only if it
// differs from the default one.
func (u URL) HostHeader() string {
	if u.defaultPort() {
		if strings.IndexByte(u.Host, ':') != -1 {
			return "[" + u.Host + "]"
		}

		return u.Host
	}

	return net.JoinHostPort(u.Host, strconv.Itoa(int(u.Port)))
}

func (u URL) String() string {
	scheme := "http://"
	if u.Secure {
		scheme = "https://"
	}

	return scheme + u.HostHeader() + u.Path
}

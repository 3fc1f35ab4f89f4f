package transport

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/indigo-web/lite/config"
)

// Supervisor runs a set of bound transports and tears all of them down as soon as any
// of them fails or Stop is called.
type Supervisor struct {
	stopped  *atomic.Bool
	running  *atomic.Bool
	ts       []boundTransport
	stopOnce *sync.Once
	stopch   chan struct{}
	done     chan struct{}
}

func NewSupervisor() Supervisor {
	return Supervisor{
		stopped:  new(atomic.Bool),
		running:  new(atomic.Bool),
		stopOnce: new(sync.Once),
		stopch:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Add binds the transport to the address. On failure, all the previously bound transports
// are closed.
func (s *Supervisor) Add(addr string, transport Transport, cb func(net.Conn)) error {
	if err := transport.Bind(addr); err != nil {
		s.close()
		return err
	}

	s.ts = append(s.ts, boundTransport{
		cb: cb,
		t:  transport,
	})

	return nil
}

// Addrs returns the addresses of all bound transports in the order they were added.
func (s *Supervisor) Addrs() []net.Addr {
	addrs := make([]net.Addr, 0, len(s.ts))
	for _, t := range s.ts {
		addrs = append(addrs, t.t.Addr())
	}

	return addrs
}

// Run blocks until a transport fails or Stop is called. In the latter case, it returns
// after every live connection is done. Run returns immediately, if Stop was already called.
func (s *Supervisor) Run(cfg config.NET) error {
	s.running.Store(true)
	defer close(s.done)

	select {
	case <-s.stopch:
		s.close()
		return nil
	default:
	}

	if len(s.ts) == 0 {
		return nil
	}

	errch := make(chan error)

	for _, t := range s.ts {
		go func(t boundTransport) {
			errch <- t.t.Listen(cfg, t.cb)
		}(t)
	}

	select {
	case err := <-errch:
		s.stop()
		drain(errch, len(s.ts)-1)

		return err
	case <-s.stopch:
		s.stop()
		drain(errch, len(s.ts))

		return nil
	}
}

// Stop blocks until Run returns. It's safe to call it multiple times, before Run or after
// Run has already returned on its own.
func (s *Supervisor) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopch)
	})

	if s.running.Load() {
		<-s.done
	}
}

func (s *Supervisor) stop() {
	if s.stopped.Swap(true) {
		return
	}

	for _, t := range s.ts {
		t.t.Stop()
		// closing the listener interrupts the pending accept right away
		t.t.Close()
	}

	for _, t := range s.ts {
		t.t.Wait()
	}
}

func (s *Supervisor) close() {
	for _, t := range s.ts {
		t.t.Close()
	}
}

type boundTransport struct {
	cb func(conn net.Conn)
	t  Transport
}

func drain(ch <-chan error, n int) {
	for range n {
		<-ch
	}
}

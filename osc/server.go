// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

package osc

import (
	"fmt"
	"net"
	"runtime"
	"sync"
	"time"
)

var bufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, MaxPacketSize)
		return &b
	},
}

// Server represents an OSC server. The server listens on Addr for incoming
// OSC packets and bundles and hands each one to Handler.
type Server struct {
	Addr        string
	Handler     func(Packet, net.Addr)
	ReadTimeout time.Duration
}

// ListenAndServe retrieves incoming OSC packets and hands them to the
// server's Handler.
func (s *Server) ListenAndServe() error {
	ln, err := net.ListenPacket("udp", s.Addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	return s.Serve(ln)
}

// Serve retrieves incoming OSC packets from the given connection and hands
// them to the server's Handler. If something goes wrong an error is returned.
func (s *Server) Serve(c net.PacketConn) error {
	var tempDelay time.Duration
	for {
		msg, addr, err := s.readFromConnection(c)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Temporary() {
				if tempDelay == 0 {
					tempDelay = 5 * time.Millisecond
				} else {
					tempDelay *= 2
				}
				if max := 1 * time.Second; tempDelay > max {
					tempDelay = max
				}
				time.Sleep(tempDelay)
				continue
			} else if !ok {
				continue // TODO: allow logging of packet errors
			}
			return err
		}
		tempDelay = 0
		go s.serve(msg, addr)
	}
}

func (s *Server) serve(m Packet, a net.Addr) {
	defer func() {
		if err := recover(); err != nil {
			buf := make([]byte, MaxPacketSize+29)
			buf = buf[:runtime.Stack(buf, false)]
			fmt.Printf("osc: panic handling from %s: %v\n%s\n", a, err, buf)
		}
	}()
	if s.Handler != nil {
		s.Handler(m, a)
	}
}

// ReceivePacket listens for incoming OSC packets and returns the packet if
// one is received.
func (s *Server) ReceivePacket(c net.PacketConn) (Packet, net.Addr, error) {
	return s.readFromConnection(c)
}

// readFromConnection retrieves OSC packets.
func (s *Server) readFromConnection(c net.PacketConn) (Packet, net.Addr, error) {
	if s.ReadTimeout != 0 {
		if err := c.SetReadDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
			return nil, nil, err
		}
	}

	b := bufPool.Get().(*[]byte)
	defer bufPool.Put(b)

	n, a, err := c.ReadFrom(*b)
	if err != nil {
		return nil, a, err
	}
	bb := make([]byte, n)
	copy(bb, *b)

	p, err := ParsePacket(bb)
	return p, a, err
}

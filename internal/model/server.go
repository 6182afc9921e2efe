package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener a server accepts connections on,
// either plain TCP or TLS.
type SecurityLayer interface {
	Listen(network, addr string) (net.Listener, error)
}

// Server is a network server with a graceful stop.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}

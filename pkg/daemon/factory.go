package daemon

import (
	"net"
	"os"
	"time"

	"github.com/grovetools/draft/pkg/paths"
)

// New returns a Client that will use the daemon if available,
// otherwise falls back to LocalClient.
//
// This implements the "transparent daemon" pattern: callers don't need
// to know whether the daemon is running or not. The same API works
// in both modes.
func New() Client {
	socketPath := paths.SocketPath()
	if _, err := os.Stat(socketPath); err == nil {
		conn, err := net.DialTimeout("unix", socketPath, 100*time.Millisecond)
		if err == nil {
			conn.Close()
			if client, err := NewRemoteClient(socketPath); err == nil {
				return client
			}
		}
	}

	// Daemon not running, track state in-process.
	return NewLocalClient()
}

// MustConnect returns a remote client or panics if the daemon is not
// available. Use this in contexts where the daemon is required.
func MustConnect() Client {
	client := New()
	if !client.IsRunning() {
		panic("draft daemon is not running; start it with 'draft daemon start'")
	}
	return client
}

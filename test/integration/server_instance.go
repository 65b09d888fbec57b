package integration

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/doodlesbykumbi/acts/pkg/server"
)

// portCounter is used to allocate unique ports for each test server
var portCounter int32 = 19000

// ServerConfig holds configuration for a test ACTS server instance
type ServerConfig struct {
	AuthRequired bool
}

// DefaultServerConfig returns the default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{}
}

// ServerInstance represents a running ACTS server
type ServerInstance struct {
	Server    *server.Server
	ServerURL string
	Port      int
	Config    ServerConfig
	cancel    context.CancelFunc
	closeFn   func()
}

// StartServer starts a new server instance against the test database.
// This supports both inline and binary modes based on how the test suite was started.
func StartServer(tc *TestContext, cfg ServerConfig) (*ServerInstance, error) {
	port := int(atomic.AddInt32(&portCounter, 1))
	portStr := fmt.Sprintf("%d", port)

	instance := &ServerInstance{
		ServerURL: fmt.Sprintf("http://127.0.0.1:%d", port),
		Port:      port,
		Config:    cfg,
	}

	if tc.InlineMode {
		s, closeFn, err := newInlineServer(tc.DatabaseURL, cfg, portStr)
		if err != nil {
			return nil, fmt.Errorf("failed to start inline server: %w", err)
		}
		instance.Server = s
		instance.closeFn = closeFn
		go func() {
			_ = s.Start()
		}()
	} else {
		cmd, cancel, err := startBinary(tc.BinaryPath, tc.DatabaseURL, cfg, portStr)
		if err != nil {
			return nil, err
		}
		instance.cancel = func() {
			cancel()
			_ = cmd.Wait()
		}
	}

	if err := waitForServer(instance.ServerURL, 30*time.Second); err != nil {
		instance.Stop()
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}
	return instance, nil
}

// Stop shuts down the server instance
func (si *ServerInstance) Stop() {
	if si.Server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = si.Server.Shutdown(ctx)
		cancel()
	}
	if si.cancel != nil {
		si.cancel()
	}
	if si.closeFn != nil {
		si.closeFn()
	}
}

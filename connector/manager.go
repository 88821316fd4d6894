package connector

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type standardConnector struct {
	provider Provider
	config   Config
}

var globalManager = &Manager{
	providers: make(map[string]Provider),
}

// Manager holds the providers drivers are resolved against.
type Manager struct {
	providers map[string]Provider
	mu        sync.RWMutex
}

// Register makes a provider available under name. Providers call it from
// their init functions.
func Register(name string, provider Provider) {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	globalManager.providers[name] = provider
}

// Drivers returns the registered provider names, sorted.
func Drivers() []string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	names := make([]string, 0, len(globalManager.providers))
	for name := range globalManager.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func New(name string, config Config) (Connector, error) {
	globalManager.mu.RLock()
	provider, ok := globalManager.providers[name]
	globalManager.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("provider %s not registered", name)
	}
	return &standardConnector{provider: provider, config: config}, nil
}

// Open connects to driver with config, retrying when config.Retry is set
// and bounding the whole attempt by config.ConnectTimeout.
func Open(ctx context.Context, driver string, config Config) (Connection, error) {
	c, err := New(driver, config)
	if err != nil {
		return nil, err
	}

	if config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.ConnectTimeout)
		defer cancel()
	}

	if config.Retry != nil {
		return c.ConnectWithRetry(ctx, *config.Retry)
	}
	return c.Connect(ctx)
}

// Connect opens a connection and runs the provider's health check on it. A
// connection failing the check is closed.
func (c *standardConnector) Connect(ctx context.Context) (Connection, error) {
	conn, err := c.provider.Connect(ctx, c.config)
	if err != nil {
		return nil, err
	}
	if err := c.provider.HealthCheck(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("health check: %w", err)
	}
	return conn, nil
}

func (c *standardConnector) ConnectWithRetry(ctx context.Context, cfg RetryConfig) (Connection, error) {
	return retryConnect(ctx, cfg, c.Connect)
}

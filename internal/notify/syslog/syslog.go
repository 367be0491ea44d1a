// Package syslog emits formatted log lines to a syslog collector over UDP or
// TCP. Formatting is left to the caller; this client only frames and ships
// lines.
package syslog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"
)

const dialTimeout = 5 * time.Second

// Config describes how to connect to a syslog collector.
type Config struct {
	// Network is "udp" or "tcp". Defaults to "udp".
	Network string
	Address string
	Logger  *slog.Logger
}

// Client ships lines to a syslog collector. It is safe for concurrent use.
// UDP writes are fire-and-forget; TCP writes redial once on a broken
// connection before giving up.
type Client struct {
	network string
	address string

	logger *slog.Logger
	conn   net.Conn
	mu     sync.Mutex
}

// NewClient dials the configured syslog endpoint.
func NewClient(cfg Config) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	address := strings.TrimSpace(cfg.Address)
	if address == "" {
		return nil, errors.New("syslog address is required")
	}

	network := strings.ToLower(strings.TrimSpace(cfg.Network))
	switch network {
	case "":
		network = "udp"
	case "udp", "tcp":
	default:
		return nil, fmt.Errorf("unsupported syslog network %q", network)
	}

	client := &Client{
		network: network,
		address: address,
		logger:  logger,
	}

	conn, err := client.dial(context.Background())
	if err != nil {
		return nil, err
	}
	client.conn = conn

	return client, nil
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	conn, err := (&net.Dialer{}).DialContext(dialCtx, c.network, c.address)
	if err != nil {
		return nil, fmt.Errorf("syslog dial %s %s: %w", c.network, c.address, err)
	}
	return conn, nil
}

// WriteLine ships one line to the collector. Trailing newlines are stripped
// and a single newline frame is appended.
func (c *Client) WriteLine(ctx context.Context, line string) error {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return errors.New("syslog line is empty")
	}
	payload := []byte(line + "\n")

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return errors.New("syslog client is closed")
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetWriteDeadline(deadline); err != nil {
			c.logger.DebugContext(ctx, "syslog set deadline failed", "error", err)
		}
	}

	if _, err := c.conn.Write(payload); err != nil {
		if c.network != "tcp" {
			return fmt.Errorf("syslog write: %w", err)
		}
		// TCP collectors drop idle connections; redial once and retry.
		conn, dialErr := c.dial(ctx)
		if dialErr != nil {
			return errors.Join(fmt.Errorf("syslog write: %w", err), dialErr)
		}
		_ = c.conn.Close()
		c.conn = conn
		if _, retryErr := c.conn.Write(payload); retryErr != nil {
			return fmt.Errorf("syslog write after redial: %w", retryErr)
		}
	}

	return nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil
	return err
}

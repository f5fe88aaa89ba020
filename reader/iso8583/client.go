package iso8583

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	connection "github.com/moov-io/iso8583-connection"
	"github.com/moov-io/iso8583/network"
	"golang.org/x/exp/slog"
)

// Client forwards swipe authorizations to an acquirer host.
type Client struct {
	addr    string
	timeout time.Duration
	logger  *slog.Logger

	mu   sync.Mutex
	conn *connection.Connection
	stan atomic.Uint32
}

func NewClient(logger *slog.Logger, addr string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		addr:    addr,
		timeout: timeout,
		logger:  logger.With(slog.String("component", "iso8583-client")),
	}
}

func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := connection.New(
		c.addr,
		Spec,
		ReadMessageLength,
		WriteMessageLength,
		connection.SendTimeout(c.timeout),
	)
	if err != nil {
		return fmt.Errorf("creating connection: %w", err)
	}
	if err := conn.Connect(); err != nil {
		return fmt.Errorf("connecting to %s: %w", c.addr, err)
	}
	c.conn = conn
	c.logger.Info("connected", slog.String("addr", c.addr))
	return nil
}

// Authorize sends an 0100 and returns the response code (DE39).
func (c *Client) Authorize(a Authorization) (string, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return "", fmt.Errorf("client is not connected")
	}

	if a.STAN == 0 {
		a.STAN = int(c.stan.Add(1) % 1000000)
	}
	req, err := BuildRequest(a)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	resp, err := conn.Send(req)
	if err != nil {
		return "", fmt.Errorf("sending authorization: %w", err)
	}

	code, err := resp.GetString(39)
	if err != nil {
		return "", fmt.Errorf("reading response code: %w", err)
	}
	return code, nil
}

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

// ReadMessageLength and WriteMessageLength frame every message with a
// 2-byte binary length header.
func ReadMessageLength(r io.Reader) (int, error) {
	header := network.NewBinary2BytesHeader()
	n, err := header.ReadFrom(r)
	if err != nil {
		return n, err
	}
	return header.Length(), nil
}

func WriteMessageLength(w io.Writer, length int) (int, error) {
	header := network.NewBinary2BytesHeader()
	if err := header.SetLength(length); err != nil {
		return 0, err
	}
	return header.WriteTo(w)
}

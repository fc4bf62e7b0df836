package net

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// WSChecker sends one request frame and reads one result frame per check.
type WSChecker struct {
	url     string
	timeout time.Duration
	dialer  *websocket.Dialer
}

func NewWSChecker(url string, timeout time.Duration) *WSChecker {
	return &WSChecker{
		url:     url,
		timeout: timeout,
		dialer: &websocket.Dialer{
			HandshakeTimeout: timeout,
		},
	}
}

func (c *WSChecker) Check(ctx context.Context, req CheckRequest) (*CheckResult, error) {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial grader: %w", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)
	_ = conn.SetReadDeadline(deadline)

	// Unblock the read if the caller gives up first.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetReadDeadline(time.Now())
	})
	defer stop()

	slog.Info("[CHECK] submitting over websocket", slog.String("url", c.url))
	if err := conn.WriteJSON(req); err != nil {
		return nil, fmt.Errorf("send check request: %w", err)
	}

	var res CheckResult
	if err := conn.ReadJSON(&res); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("read check response: %w", err)
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return verdict(&res)
}

func (c *WSChecker) Close() error { return nil }

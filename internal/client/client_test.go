package client

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/rangedrill/internal/protocol"
)

// A request with no response fails after the timeout instead of hanging.
func TestRequestTimesOut(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := quartz.NewMock(t)
	c := NewClientWithClock("http://localhost:0", log.New(io.Discard), clock, 10*time.Second)

	trap := clock.Trap().AfterFunc()
	defer trap.Close()

	errCh := make(chan error, 1)
	go func() {
		_, err := c.request(ctx, protocol.MessageTypeNextHand, nil)
		errCh <- err
	}()

	call := trap.MustWait(ctx)
	call.MustRelease(ctx)
	clock.Advance(10 * time.Second).MustWait(ctx)

	require.ErrorIs(t, <-errCh, ErrRequestTimeout)
}

// A transport failure aborts waiting requests right away; the mock clock
// never advances, so a pass proves nothing waited out the timeout.
func TestTransportFailureFailsRequestsFast(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := quartz.NewMock(t)
	c := NewClientWithClock("http://localhost:0", log.New(io.Discard), clock, time.Minute)

	trap := clock.Trap().AfterFunc()
	defer trap.Close()

	errCh := make(chan error, 1)
	go func() {
		_, err := c.request(ctx, protocol.MessageTypeNextHand, nil)
		errCh <- err
	}()

	call := trap.MustWait(ctx)
	call.MustRelease(ctx)

	c.failFast()
	require.Error(t, <-errCh)
}

// Disconnect fails any request still waiting for its response.
func TestDisconnectFailsPendingRequests(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := quartz.NewMock(t)
	c := NewClientWithClock("http://localhost:0", log.New(io.Discard), clock, time.Minute)

	trap := clock.Trap().AfterFunc()
	defer trap.Close()

	errCh := make(chan error, 1)
	go func() {
		_, err := c.request(ctx, protocol.MessageTypeListPositions, nil)
		errCh <- err
	}()

	call := trap.MustWait(ctx)
	call.MustRelease(ctx)

	require.NoError(t, c.Disconnect())
	require.Error(t, <-errCh)
}

// Package telemetry streams benchmark records to a live observer over a
// WebSocket. Each record is sent as one JSON text message as soon as the
// iteration completes, so a dashboard watching a long run sees progress
// without waiting for the end banner.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coder/websocket"

	"runebench/internal/core"
)

const writeTimeout = 5 * time.Second

// wireRecord is the JSON shape written to the socket. Microsecond fields
// keep the same names as the primary output header.
type wireRecord struct {
	Runtime   string `json:"runtime"`
	Workload  string `json:"workload"`
	Iteration int    `json:"iteration"`
	InitUS    int64  `json:"init_runtime_us"`
	LoadUS    int64  `json:"load_program_us"`
	ExecUS    int64  `json:"execution_time_us"`
	Correct   bool   `json:"correct"`
	Error     string `json:"error,omitempty"`

	PeakBytes      *uint64 `json:"peak_allocated_bytes,omitempty"`
	AllocatedBytes *uint64 `json:"currently_allocated_bytes,omitempty"`
	HeapBytes      *uint64 `json:"heap_size,omitempty"`
}

// Client is a core.RecordSink that forwards records over a WebSocket.
type Client struct {
	conn     *websocket.Conn
	runtime  string
	workload string
}

// Dial connects to the telemetry endpoint. The caller owns the returned
// client and must Close it when the run finishes.
func Dial(ctx context.Context, url, runtime, workload string) (*Client, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing telemetry endpoint %q: %w", url, err)
	}
	return &Client{conn: conn, runtime: runtime, workload: workload}, nil
}

// Record implements core.RecordSink.
func (c *Client) Record(rec core.BenchmarkRecord) error {
	wr := wireRecord{
		Runtime:   c.runtime,
		Workload:  c.workload,
		Iteration: rec.Iteration,
		InitUS:    rec.Timing.InitUS,
		LoadUS:    rec.Timing.LoadUS,
		ExecUS:    rec.Timing.ExecUS,
		Correct:   rec.Correct,
	}
	if rec.Err != nil {
		wr.Error = rec.Err.Error()
	}
	if rec.Mem != nil {
		wr.PeakBytes = &rec.Mem.PeakBytes
		wr.AllocatedBytes = &rec.Mem.AllocatedBytes
		wr.HeapBytes = &rec.Mem.HeapBytes
	}

	payload, err := json.Marshal(wr)
	if err != nil {
		return fmt.Errorf("encoding record %d: %w", rec.Iteration, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := c.conn.Write(ctx, websocket.MessageText, payload); err != nil {
		return fmt.Errorf("sending record %d: %w", rec.Iteration, err)
	}
	return nil
}

// Close performs a normal closure handshake.
func (c *Client) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "run complete")
}

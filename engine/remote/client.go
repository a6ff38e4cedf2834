package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/urban-transit-lab/transit-explorer/engine"
)

// Client talks to the engine worker over NATS. It implements engine.Engine.
type Client struct {
	nc      *nats.Conn
	subject string
	timeout time.Duration
}

var _ engine.Engine = (*Client)(nil)

// Dial connects to the NATS server and returns a client issuing calls on the
// given subject. timeout bounds each call when the caller's context carries
// no earlier deadline.
func Dial(url, subject string, timeout time.Duration) (*Client, error) {
	nc, err := nats.Connect(url,
		nats.Name("transit-explorer"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("nats disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Printf("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return NewClient(nc, subject, timeout), nil
}

// NewClient wraps an existing connection.
func NewClient(nc *nats.Conn, subject string, timeout time.Duration) *Client {
	if subject == "" {
		subject = "gtfs.engine.query"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{nc: nc, subject: subject, timeout: timeout}
}

// Close drains and closes the underlying connection.
func (c *Client) Close() {
	if c.nc != nil {
		_ = c.nc.Drain()
		c.nc.Close()
	}
}

// call runs one named operation. Replies stream on a dedicated inbox until a
// final result or error arrives; progress-only replies are forwarded to the
// progress callback when one is given. Replies for superseded request ids are
// dropped.
func (c *Client) call(ctx context.Context, op string, args any, result any, progress func(float64)) error {
	var raw json.RawMessage
	if args != nil {
		b, err := json.Marshal(args)
		if err != nil {
			return fmt.Errorf("%s: encode args: %w", op, err)
		}
		raw = b
	}
	req := request{ID: uuid.NewString(), Op: op, Args: raw}
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	inbox := c.nc.NewRespInbox()
	sub, err := c.nc.SubscribeSync(inbox)
	if err != nil {
		return fmt.Errorf("%s: subscribe: %w", op, err)
	}
	defer func() { _ = sub.Unsubscribe() }()

	if err := c.nc.PublishRequest(c.subject, inbox, data); err != nil {
		return fmt.Errorf("%s: publish: %w", op, err)
	}

	for {
		msg, err := sub.NextMsgWithContext(ctx)
		if err != nil {
			return fmt.Errorf("%s: await reply: %w", op, err)
		}
		var rep reply
		if err := json.Unmarshal(msg.Data, &rep); err != nil {
			return fmt.Errorf("%s: decode reply: %w", op, err)
		}
		if rep.ID != "" && rep.ID != req.ID {
			continue
		}
		if !rep.final() {
			if rep.Progress != nil && progress != nil {
				progress(*rep.Progress)
			}
			continue
		}
		if rep.Error != "" {
			return &engine.CallError{Op: op, Msg: rep.Error}
		}
		if result != nil {
			if err := json.Unmarshal(rep.Result, result); err != nil {
				return fmt.Errorf("%s: decode result: %w", op, err)
			}
		}
		return nil
	}
}

func (c *Client) Agencies(ctx context.Context) ([]engine.Agency, error) {
	var out []engine.Agency
	err := c.call(ctx, opGetAgencies, nil, &out, nil)
	return out, err
}

func (c *Client) Routes(ctx context.Context, f engine.RouteFilter) ([]engine.Route, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	var out []engine.Route
	err := c.call(ctx, opGetRoutes, f, &out, nil)
	return out, err
}

func (c *Client) Trips(ctx context.Context, f engine.TripFilter) ([]engine.Trip, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	var out []engine.Trip
	err := c.call(ctx, opGetTrips, f, &out, nil)
	return out, err
}

func (c *Client) Stops(ctx context.Context, f engine.StopFilter) ([]engine.Stop, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	var out []engine.Stop
	err := c.call(ctx, opGetStops, f, &out, nil)
	return out, err
}

func (c *Client) StopTimes(ctx context.Context, f engine.StopTimeFilter) ([]engine.StopTime, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	var out []engine.StopTime
	err := c.call(ctx, opGetStopTimes, f, &out, nil)
	return out, err
}

func (c *Client) Alerts(ctx context.Context, f engine.AlertFilter) ([]engine.Alert, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	var out []engine.Alert
	err := c.call(ctx, opGetAlerts, f, &out, nil)
	return out, err
}

func (c *Client) VehiclePositions(ctx context.Context) ([]engine.VehicleSnapshot, error) {
	var out []engine.VehicleSnapshot
	err := c.call(ctx, opGetVehiclePositions, nil, &out, nil)
	return out, err
}

func (c *Client) TripUpdates(ctx context.Context) ([]engine.TripUpdate, error) {
	var out []engine.TripUpdate
	err := c.call(ctx, opGetTripUpdates, nil, &out, nil)
	return out, err
}

func (c *Client) ActiveServiceIDs(ctx context.Context, date string) (engine.ServiceIDSet, error) {
	args := struct {
		Date string `json:"date"`
	}{Date: date}
	var ids []string
	if err := c.call(ctx, opActiveServiceIDs, args, &ids, nil); err != nil {
		return nil, err
	}
	return engine.NewServiceIDSet(ids...), nil
}

func (c *Client) FetchRealtimeData(ctx context.Context) error {
	return c.call(ctx, opFetchRealtimeData, nil, nil, nil)
}

func (c *Client) ExportDatabase(ctx context.Context, w io.Writer, progress func(float64)) error {
	var data []byte
	if err := c.call(ctx, opExportDatabase, nil, &data, progress); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

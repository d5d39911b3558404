// Package dispatch routes decoded requests to the executor and file accessor
// and runs the agent's serve loop. The loop is strictly sequential: one
// request is received, fully handled and answered before the next is read.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/kaiobuu/kaioagent/internal/executor"
	"github.com/kaiobuu/kaioagent/internal/fileaccess"
	"github.com/kaiobuu/kaioagent/internal/protocol"
	"github.com/kaiobuu/kaioagent/internal/transport"

	"github.com/rs/zerolog/log"
)

// Link is the message channel the serve loop reads from and writes to.
// *transport.Link satisfies it; tests substitute scripted fakes.
type Link interface {
	Receive() ([]byte, error)
	Send(v any) error
}

type Dispatcher struct {
	executor *executor.Executor
	accessor *fileaccess.Accessor
}

func New(exec *executor.Executor, accessor *fileaccess.Accessor) *Dispatcher {
	return &Dispatcher{
		executor: exec,
		accessor: accessor,
	}
}

// Handle routes one request and wraps the outcome into a correlated response.
// It is total over the defined actions plus the unknown-action fallback; the
// only error it returns is a spawn fault, which is left to the top level to
// act on.
func (d *Dispatcher) Handle(ctx context.Context, req *protocol.Request) (protocol.Response, error) {
	var data map[string]any

	switch req.Data.Action {
	case protocol.ActionCommand:
		result, err := d.executor.Run(ctx, req.Data.Command)
		if err != nil {
			return protocol.Response{}, fmt.Errorf("executing command: %w", err)
		}
		data = result.Data()

	case protocol.ActionRead:
		data = d.accessor.Read(req.Data.Path)

	case protocol.ActionWrite:
		data = d.accessor.Write(req.Data.Path, req.Data.Content)

	default:
		log.Error().Msgf("dispatch: unknown action: %s", req.Data.Action)
		data = protocol.ErrorData("Unknown action")
	}

	return protocol.NewResponse(req.RequestID, data), nil
}

// Serve runs the receive/decode/route/respond loop until the peer closes the
// connection (returns nil) or a fault that can't be answered in-band occurs
// (returns the fault). Frames that fail validation are answered with a
// best-effort error response when a request id could be recovered; otherwise
// the connection is treated as protocol-broken.
func (d *Dispatcher) Serve(ctx context.Context, link Link) error {
	for {
		raw, err := link.Receive()
		if err != nil {
			if errors.Is(err, transport.ErrClosed) {
				log.Info().Msg("dispatch: connection closed by controller")
				return nil
			}
			return err
		}

		req, err := protocol.DecodeRequest(raw)
		if err != nil {
			var decErr *protocol.DecodeError
			if errors.As(err, &decErr) && decErr.Recoverable() {
				log.Error().Msgf("dispatch: bad request %s: %s", decErr.RequestID, decErr.Reason)
				if err := link.Send(protocol.NewResponse(decErr.RequestID, protocol.ErrorData(decErr.Reason))); err != nil {
					return err
				}
				continue
			}
			return fmt.Errorf("protocol violation: %w", err)
		}

		response, err := d.Handle(ctx, req)
		if err != nil {
			return err
		}

		if err := link.Send(response); err != nil {
			return err
		}
	}
}

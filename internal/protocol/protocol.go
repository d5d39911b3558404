// Package protocol defines the JSON request/response types exchanged with the
// controller. Inbound frames are treated as untrusted: DecodeRequest performs
// an explicit validation step and reports what it could recover.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Actions the controller may request.
const (
	ActionCommand = "command"
	ActionRead    = "read"
	ActionWrite   = "write"
)

// RequestData carries the action tag plus the action-specific fields. Fields
// that don't apply to the tagged action are left empty.
type RequestData struct {
	Action  string `json:"action"`
	Command string `json:"command,omitempty"`
	Path    string `json:"path,omitempty"`
	Content string `json:"content,omitempty"`
}

// Request is a single tagged request from the controller. RequestID is
// caller-supplied and opaque; it is only ever echoed back.
type Request struct {
	RequestID string      `json:"request_id"`
	Data      RequestData `json:"data"`
}

// Response answers exactly one Request. Error is derived from the presence of
// an "error" key in Data and is never set independently, so responses are
// built through NewResponse only.
type Response struct {
	RequestID string         `json:"request_id"`
	Error     bool           `json:"error"`
	Data      map[string]any `json:"data"`
}

// NewResponse builds the response for a request, deriving the error flag.
func NewResponse(requestID string, data map[string]any) Response {
	_, hasError := data["error"]
	return Response{
		RequestID: requestID,
		Error:     hasError,
		Data:      data,
	}
}

// ErrorData wraps a message into the in-band error shape handlers return.
func ErrorData(msg string) map[string]any {
	return map[string]any{"error": msg}
}

// DecodeError describes a frame that failed validation. RequestID holds the
// id recovered from the frame, if any, so the caller can decide whether a
// best-effort error response is still possible.
type DecodeError struct {
	RequestID string
	Reason    string
}

func (e *DecodeError) Error() string {
	return "decoding request: " + e.Reason
}

// Recoverable reports whether the frame carried a usable request id.
func (e *DecodeError) Recoverable() bool {
	return e.RequestID != ""
}

// DecodeRequest parses and validates a raw frame. An unknown action tag is
// not a decode failure; it is answered in-band by the dispatcher. Missing
// ids, a missing action or missing action-specific fields are.
func DecodeRequest(raw []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, &DecodeError{Reason: err.Error()}
	}

	if req.RequestID == "" {
		return nil, &DecodeError{Reason: "missing request_id"}
	}
	if req.Data.Action == "" {
		return nil, &DecodeError{RequestID: req.RequestID, Reason: "missing data.action"}
	}

	// Check the action-specific required fields
	switch req.Data.Action {
	case ActionCommand:
		if req.Data.Command == "" {
			return nil, &DecodeError{RequestID: req.RequestID, Reason: "action command requires data.command"}
		}
	case ActionRead:
		if req.Data.Path == "" {
			return nil, &DecodeError{RequestID: req.RequestID, Reason: "action read requires data.path"}
		}
	case ActionWrite:
		if req.Data.Path == "" {
			return nil, &DecodeError{RequestID: req.RequestID, Reason: "action write requires data.path"}
		}
		if err := requireContent(raw); err != nil {
			return nil, &DecodeError{RequestID: req.RequestID, Reason: err.Error()}
		}
	}

	return &req, nil
}

// requireContent distinguishes an absent content field from an explicitly
// empty one, which is a valid write.
func requireContent(raw []byte) error {
	var probe struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return fmt.Errorf("action write requires data.content")
	}
	if _, ok := probe.Data["content"]; !ok {
		return fmt.Errorf("action write requires data.content")
	}
	return nil
}

// RecoverRequestID pulls the request id out of a frame that failed to decode
// as a Request, so the loop can still correlate an error response.
func RecoverRequestID(raw []byte) string {
	var probe struct {
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	return probe.RequestID
}

package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// User-facing messages produced by Classify.
const (
	MsgNotFound      = "requested resource not found; verify API path"
	MsgInternal      = "internal server error; retry later"
	MsgUnreachable   = "cannot reach server; check network or backend availability"
	MsgUnknown       = "unknown error"
	statusMsgPattern = "request failed (%d)"
)

// OutcomeKind tags the variant held by an Outcome.
type OutcomeKind int

const (
	// OutcomeSuccess is a 2xx response.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeServerError is a response with any other status.
	OutcomeServerError
	// OutcomeNetworkFailure is a dispatched request that got no response.
	OutcomeNetworkFailure
	// OutcomeSetupFailure is a request that never left the process.
	OutcomeSetupFailure
)

// String returns the variant name used in log records.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeServerError:
		return "server_error"
	case OutcomeNetworkFailure:
		return "network_failure"
	case OutcomeSetupFailure:
		return "setup_failure"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is the raw result of one request before classification.
// StatusCode and Body are set for OutcomeSuccess and OutcomeServerError;
// Err is set for the two failure variants without a response.
type Outcome struct {
	Kind       OutcomeKind
	StatusCode int
	Body       []byte
	Err        error
}

// FromResponse builds the Outcome for a received response and its body.
func FromResponse(statusCode int, body []byte) Outcome {
	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		return Outcome{Kind: OutcomeSuccess, StatusCode: statusCode, Body: body}
	}
	return Outcome{Kind: OutcomeServerError, StatusCode: statusCode, Body: body}
}

// Network builds the Outcome for a request that was sent but never answered.
func Network(err error) Outcome {
	return Outcome{Kind: OutcomeNetworkFailure, Err: err}
}

// Setup builds the Outcome for a request that could not be sent.
func Setup(err error) Outcome {
	return Outcome{Kind: OutcomeSetupFailure, Err: err}
}

// RawMessage is the unclassified description of o used for diagnostics.
func (o Outcome) RawMessage() string {
	if o.Err != nil {
		return o.Err.Error()
	}
	if o.Kind == OutcomeServerError {
		return http.StatusText(o.StatusCode)
	}
	return ""
}

// Classify maps o to a UserError. Success yields nil.
//
// Precedence is fixed: a response with a status wins, then a dispatched
// request without response, then the local setup error. Exactly one branch
// applies to any Outcome.
func Classify(o Outcome) *UserError {
	switch o.Kind {
	case OutcomeSuccess:
		return nil
	case OutcomeServerError:
		return &UserError{Kind: KindServerStatus, Message: statusMessage(o.StatusCode, o.Body), StatusCode: o.StatusCode}
	case OutcomeNetworkFailure:
		return &UserError{Kind: KindNetwork, Message: MsgUnreachable}
	default:
		if o.Err == nil || o.Err.Error() == "" {
			return &UserError{Kind: KindUnknown, Message: MsgUnknown}
		}
		return &UserError{Kind: KindRequestSetup, Message: o.Err.Error()}
	}
}

func statusMessage(statusCode int, body []byte) string {
	switch statusCode {
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusInternalServerError:
		return MsgInternal
	}
	if detail := serverDetail(body); detail != "" {
		return detail
	}
	return fmt.Sprintf(statusMsgPattern, statusCode)
}

// serverDetail extracts the string "detail" field the backend puts in error
// bodies. Non-JSON bodies and non-string details yield "".
func serverDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return detail
}

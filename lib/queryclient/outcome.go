package queryclient

import "encoding/json"

type OutcomeKind string

const (
	KindSuccess          OutcomeKind = "success"
	KindTransportFailure OutcomeKind = "transport_failure"
	KindServerError      OutcomeKind = "server_error"
	KindDecodeFailure    OutcomeKind = "decode_failure"
)

// Outcome is the classified result of a single probe. Exactly one
// variant is populated, use the constructors instead of building it
// by hand. Callers branch on Kind, never on HTTPStatus.
type Outcome struct {
	Kind       OutcomeKind `json:"kind"`
	HTTPStatus int         `json:"http_status,omitempty"`
	// Body is the parsed response, only set when Kind == KindSuccess.
	Body any `json:"body,omitempty"`
	// RawBody preserves the unparsed response text for server errors
	// and decode failures.
	RawBody string `json:"raw_body,omitempty"`
	// Cause describes a transport-level failure, no response obtained.
	Cause string `json:"cause,omitempty"`
}

func Success(status int, body any) Outcome {
	return Outcome{Kind: KindSuccess, HTTPStatus: status, Body: body}
}

func TransportFailure(cause string) Outcome {
	if cause == "" {
		cause = "unknown transport failure"
	}
	return Outcome{Kind: KindTransportFailure, Cause: cause}
}

func ServerError(status int, rawBody string) Outcome {
	return Outcome{Kind: KindServerError, HTTPStatus: status, RawBody: rawBody}
}

func DecodeFailure(status int, rawBody string) Outcome {
	return Outcome{Kind: KindDecodeFailure, HTTPStatus: status, RawBody: rawBody}
}

func (o Outcome) IsSuccess() bool {
	return o.Kind == KindSuccess
}

// Encode serializes the outcome so that decoding it again reproduces
// the same discriminant and payload.
func (o Outcome) Encode() ([]byte, error) {
	return json.MarshalIndent(o, "", "  ")
}

func DecodeOutcome(data []byte) (Outcome, error) {
	var out Outcome
	err := json.Unmarshal(data, &out)
	return out, err
}

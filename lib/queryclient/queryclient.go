// Package queryclient issues single-shot probes against the search
// endpoints of a remote platform and classifies the result. It never
// retries and never lets a transport error escape as a plain error:
// every call produces exactly one Outcome variant.
package queryclient

import (
	"context"
	"courseprobe/lib/restyutil"
	"courseprobe/lib/telemetry"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"strconv"
	"strings"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/queryclient")

// WireFormat selects how a Request is serialized onto the wire. The
// remote service exposes the same logical search through several
// incompatible endpoint shapes, format is picked per endpoint rather
// than duplicating client logic.
type WireFormat int

const (
	// WireGateway POSTs {operationName, variables, query} with an
	// optional opname query-string parameter.
	WireGateway WireFormat = iota
	// WireBatch POSTs a one-element list of the gateway object and
	// receives a list of per-operation results.
	WireBatch
	// WireREST GETs with the variables flattened into query-string
	// parameters.
	WireREST
)

// Endpoint describes one of the endpoint variants.
type Endpoint struct {
	Path   string
	Format WireFormat
	// Params are query-string parameters always sent to this
	// endpoint, regardless of the request variables.
	Params map[string]string
}

// Request is a single probe. Construct, execute once, discard.
type Request struct {
	Operation string
	Query     string
	Variables map[string]any
	Endpoint  Endpoint
}

type gatewayPayload struct {
	Name      string `json:"operationName"`
	Variables any    `json:"variables"`
	Query     string `json:"query"`
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

type Options struct {
	BaseURL string
	// UserAgent overrides the identifying client signature sent with
	// every request.
	UserAgent string
	Referer   string
}

type Client struct {
	http *resty.Client
}

func New(opts Options) (*Client, error) {
	client := resty.New()
	client.SetBaseURL(opts.BaseURL)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)

	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	client.SetHeader("user-agent", ua)
	client.SetHeader("accept", "application/json")
	if opts.Referer != "" {
		client.SetHeader("referer", opts.Referer)
	}
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	telemetry.InstrumentResty(client, "queryclient/http")

	return &Client{http: client}, nil
}

// SetInstrumentOutput dumps every raw HTTP exchange made by this
// client to the given output, see restyutil.
func (c *Client) SetInstrumentOutput(output restyutil.InstrumentOutput) {
	restyutil.InstrumentClient(c.http, tracer, output)
}

// Execute performs exactly one blocking network call and classifies
// the result. It never returns an error, the failure modes are all
// inside the Outcome.
func (c *Client) Execute(ctx context.Context, req Request) Outcome {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("execute:%s", req.Operation))
	defer span.End()
	span.SetAttributes(attribute.KeyValue{
		Key:   "custom.operation",
		Value: attribute.StringValue(req.Operation),
	})

	r := c.http.R().SetContext(ctx)
	for k, v := range req.Endpoint.Params {
		r.SetQueryParam(k, v)
	}

	var res *resty.Response
	var err error

	switch req.Endpoint.Format {
	case WireGateway, WireBatch:
		payload := gatewayPayload{
			Name:      req.Operation,
			Variables: req.Variables,
			Query:     req.Query,
		}
		var body []byte
		if req.Endpoint.Format == WireBatch {
			body, err = json.Marshal([]gatewayPayload{payload})
		} else {
			body, err = json.Marshal(payload)
		}
		if err != nil {
			span.SetStatus(codes.Error, "failed to serialize request")
			return TransportFailure(fmt.Sprintf("serialize request: %s", err))
		}
		if req.Endpoint.Format == WireGateway && req.Operation != "" {
			r.SetQueryParam("opname", req.Operation)
		}
		slog.DebugContext(ctx, "outgoing request",
			"operation", req.Operation,
			"path", req.Endpoint.Path,
			"body", string(body),
		)
		res, err = r.
			SetHeader("content-type", "application/json").
			SetBody(body).
			Post(req.Endpoint.Path)
	case WireREST:
		for k, v := range req.Variables {
			r.SetQueryParam(k, queryParamValue(v))
		}
		slog.DebugContext(ctx, "outgoing request",
			"operation", req.Operation,
			"path", req.Endpoint.Path,
			"params", fmt.Sprint(req.Variables),
		)
		res, err = r.Get(req.Endpoint.Path)
	default:
		return TransportFailure(fmt.Sprintf("unknown wire format: %d", req.Endpoint.Format))
	}

	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch")
		return TransportFailure(err.Error())
	}

	status := res.StatusCode()
	slog.DebugContext(ctx, "incoming response",
		"operation", req.Operation,
		"status", status,
	)
	if status < 200 || status > 299 {
		// error-body shape is unspecified, keep the raw text
		span.SetStatus(codes.Error, fmt.Sprintf("server returned %d", status))
		return ServerError(status, res.String())
	}

	var body any
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		span.SetStatus(codes.Error, "failed to parse json response")
		return DecodeFailure(status, res.String())
	}
	return Success(status, body)
}

func queryParamValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []string:
		return strings.Join(t, ",")
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = queryParamValue(e)
		}
		return strings.Join(parts, ",")
	default:
		encoded, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(encoded)
	}
}

// Package coursera binds the query client to the search surface of
// coursera.org: the graphql gateway, the batch gateway and a handful
// of REST endpoints. The schema behind these is undocumented and
// drifts, every operation therefore ships an extraction spec instead
// of a typed response.
package coursera

import (
	"courseprobe/lib/queryclient"
	"courseprobe/lib/restyutil"
)

const DefaultBaseUrl = "https://www.coursera.org"

type ClientOptions struct {
	BaseUrl   string
	UserAgent string
}

type Client struct {
	qc *queryclient.Client
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	qc, err := queryclient.New(queryclient.Options{
		BaseURL:   baseUrl,
		UserAgent: opts.UserAgent,
		Referer:   baseUrl + "/search",
	})
	if err != nil {
		return nil, err
	}
	return &Client{qc: qc}, nil
}

func (c *Client) SetInstrumentOutput(output restyutil.InstrumentOutput) {
	c.qc.SetInstrumentOutput(output)
}

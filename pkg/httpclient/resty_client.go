package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/Adda-Baaj/swapi-curl/internal/domain"
	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient. A zero timeout leaves the client unbounded.
func NewRestyClient(timeout time.Duration) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(timeout)}
}

// newRestyBaseClient creates a resty.Client that returns the first response as
// received: redirects are not followed and bodies are not transparently decompressed.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableCompression = true

	c := resty.New()
	c.SetTransport(transport)
	c.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}

// SetLogger routes resty's internal warnings and debug output to l.
func (r *RestyClient) SetLogger(l resty.Logger) *RestyClient {
	if l != nil {
		r.client.SetLogger(l)
	}
	return r
}

// Do sends req exactly once. Headers are applied in declaration order.
func (r *RestyClient) Do(ctx context.Context, req domain.Request) (Response, error) {
	rr := r.client.R().SetContext(ctx)
	for _, h := range req.Headers {
		rr.SetHeader(h.Name, h.Value)
	}
	if req.Body != "" {
		rr.SetBody(req.Body)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	resp, err := rr.Execute(method, req.URL)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte        { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Status() string      { return r.resp.Status() }
func (r *restyResponseAdapter) Proto() string       { return r.resp.Proto() }
func (r *restyResponseAdapter) Header() http.Header { return r.resp.Header() }

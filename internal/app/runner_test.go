package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Adda-Baaj/swapi-curl/internal/config"
	"github.com/Adda-Baaj/swapi-curl/internal/domain"
	"github.com/Adda-Baaj/swapi-curl/internal/scripts"
	"github.com/Adda-Baaj/swapi-curl/pkg/dump"
	"github.com/Adda-Baaj/swapi-curl/pkg/httpclient"
)

const swapiPeople = "http://swapi.co/api/people/"

// redirectClient sends every request to target through a real resty client,
// recording the URL it was asked for.
type redirectClient struct {
	target    string
	inner     *httpclient.RestyClient
	requested []string
}

func (c *redirectClient) Do(ctx context.Context, req domain.Request) (httpclient.Response, error) {
	c.requested = append(c.requested, req.URL)
	req.URL = c.target
	return c.inner.Do(ctx, req)
}

// failingClient always reports a transport error.
type failingClient struct{}

func (failingClient) Do(context.Context, domain.Request) (httpclient.Response, error) {
	return nil, errors.New("dial tcp: connection refused")
}

// newEchoServer reflects the method, the two headers of interest and the body.
func newEchoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Echo", "1")
		fmt.Fprintf(w, "method=%s content-type=%s accept=%s body=%s",
			r.Method, r.Header.Get("Content-Type"), r.Header.Get("Accept"), body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runScript(t *testing.T, client httpclient.Client, id string) string {
	t.Helper()
	var out bytes.Buffer
	runner, err := NewRunner(&config.Config{RequestTimeout: 2 * time.Second}, nil, client, &out)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if err := runner.Run(context.Background(), id); err != nil {
		t.Fatalf("Run(%s): %v", id, err)
	}
	return out.String()
}

func TestRunGetDumpsBodyOnly(t *testing.T) {
	srv := newEchoServer(t)
	client := &redirectClient{target: srv.URL, inner: httpclient.NewRestyClient(2 * time.Second)}

	got := runScript(t, client, scripts.IDGet)

	if strings.HasPrefix(got, "<pre>") || !strings.HasPrefix(got, "(string) ") {
		t.Fatalf("unexpected dump prefix: %q", got)
	}
	if strings.Contains(got, "X-Echo") {
		t.Fatalf("get script must not capture headers: %q", got)
	}
	if !strings.Contains(got, "method=GET content-type= accept= body=") {
		t.Fatalf("expected plain GET without custom headers, got %q", got)
	}
	if len(client.requested) != 1 || client.requested[0] != swapiPeople {
		t.Fatalf("unexpected requested urls %v", client.requested)
	}
}

func TestRunHeadersCapturesResponseHeaders(t *testing.T) {
	srv := newEchoServer(t)
	client := &redirectClient{target: srv.URL, inner: httpclient.NewRestyClient(2 * time.Second)}

	got := runScript(t, client, scripts.IDHeaders)

	if !strings.HasPrefix(got, "<pre>(string) ") {
		t.Fatalf("expected <pre> tag before dump: %q", got)
	}
	if !strings.Contains(got, `HTTP/1.1 200 OK\r\n`) || !strings.Contains(got, `X-Echo: 1\r\n`) {
		t.Fatalf("expected status line and headers in capture: %q", got)
	}
	if !strings.Contains(got, "method=GET content-type=application/json accept=text/html body=") {
		t.Fatalf("unexpected echoed request: %q", got)
	}
}

func TestRunPostSendsJSONFields(t *testing.T) {
	srv := newEchoServer(t)
	client := &redirectClient{target: srv.URL, inner: httpclient.NewRestyClient(2 * time.Second)}

	got := runScript(t, client, scripts.IDPost)

	want := `method=POST content-type=application/json accept=application/json body={\"name\":\"John\",\"surname\":\"Doe\"}`
	if !strings.HasPrefix(got, "<pre>(string) ") {
		t.Fatalf("expected <pre> tag before dump: %q", got)
	}
	if !strings.Contains(got, want) {
		t.Fatalf("dump %q does not contain %q", got, want)
	}
	if strings.Contains(got, "X-Echo") {
		t.Fatalf("post script must not capture headers: %q", got)
	}
}

func TestRunPostDumpsRedirectWithoutFollowing(t *testing.T) {
	var hits []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.Method+" "+r.URL.Path)
		if r.URL.Path == "/moved" {
			_, _ = w.Write([]byte("final"))
			return
		}
		w.Header().Set("Location", "/moved")
		w.WriteHeader(http.StatusMovedPermanently)
		_, _ = w.Write([]byte("moved"))
	}))
	t.Cleanup(srv.Close)
	client := &redirectClient{target: srv.URL + "/api/people/", inner: httpclient.NewRestyClient(2 * time.Second)}

	got := runScript(t, client, scripts.IDPost)

	if len(hits) != 1 || hits[0] != "POST /api/people/" {
		t.Fatalf("expected exactly one POST, server saw %v", hits)
	}
	if strings.Contains(got, "final") {
		t.Fatalf("redirect target was fetched: %q", got)
	}
	if got != "<pre>(string) (len=5) \"moved\"\n" {
		t.Fatalf("expected the 301 body to be dumped: %q", got)
	}
}

func TestRunDumpsFalseOnTransportError(t *testing.T) {
	got := runScript(t, failingClient{}, scripts.IDHeaders)
	if got != "<pre>(bool) false\n" {
		t.Fatalf("unexpected dump %q", got)
	}

	got = runScript(t, failingClient{}, scripts.IDGet)
	if got != dump.New().Sdump(false) {
		t.Fatalf("unexpected dump %q", got)
	}
}

func TestRunUnknownScript(t *testing.T) {
	runner, err := NewRunner(&config.Config{}, nil, failingClient{}, io.Discard)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if err := runner.Run(context.Background(), "delete"); err == nil {
		t.Fatalf("expected error for unknown script")
	}
}

func TestNewRunnerRequiresConfig(t *testing.T) {
	if _, err := NewRunner(nil, nil, nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

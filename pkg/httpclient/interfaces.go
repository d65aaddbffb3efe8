package httpclient

import (
	"context"
	"net/http"

	"github.com/Adda-Baaj/swapi-curl/internal/domain"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Status() string
	Proto() string
	Header() http.Header
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req domain.Request) (Response, error)
}

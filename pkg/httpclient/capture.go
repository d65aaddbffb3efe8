package httpclient

import (
	"fmt"
	"net/http"
	"strings"
)

// Capture renders resp the way curl hands it back to a caller. With
// includeHeaders the status line and headers precede the body, separated
// by a blank line; otherwise only the body is returned. A nil response
// yields an empty string.
func Capture(resp Response, includeHeaders bool) string {
	if resp == nil {
		return ""
	}
	if !includeHeaders {
		return string(resp.Body())
	}

	var b strings.Builder
	proto := resp.Proto()
	if proto == "" {
		proto = "HTTP/1.1"
	}
	status := resp.Status()
	if status == "" {
		status = fmt.Sprintf("%d %s", resp.StatusCode(), http.StatusText(resp.StatusCode()))
	}
	fmt.Fprintf(&b, "%s %s\r\n", proto, status)
	if h := resp.Header(); h != nil {
		_ = h.Write(&b)
	}
	b.WriteString("\r\n")
	b.Write(resp.Body())
	return b.String()
}

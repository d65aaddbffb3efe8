package domain

// Header is a single request header; order is preserved when sent.
type Header struct {
	Name  string
	Value string
}

// Request describes one outgoing HTTP call. It is built once and never mutated.
type Request struct {
	URL            string
	Method         string
	Headers        []Header
	Body           string
	IncludeHeaders bool
	OutputTag      string
}

// HeaderMap flattens Headers into a map; later duplicates win.
func (r Request) HeaderMap() map[string]string {
	if len(r.Headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(r.Headers))
	for _, h := range r.Headers {
		out[h.Name] = h.Value
	}
	return out
}

// Package scripts holds the literal request descriptors the programs run.
package scripts

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/Adda-Baaj/swapi-curl/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	IDGet     = "get"
	IDHeaders = "headers"
	IDPost    = "post"
)

//go:embed scripts.yaml
var defaultScripts []byte

// HeaderEntry is one ordered header declaration.
type HeaderEntry struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Script is a single request descriptor.
type Script struct {
	ID             string            `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	Method         string            `json:"method" yaml:"method"`
	URL            string            `json:"url" yaml:"url"`
	Headers        []HeaderEntry     `json:"headers" yaml:"headers"`
	Fields         map[string]string `json:"fields" yaml:"fields"`
	IncludeHeaders bool              `json:"include_headers" yaml:"include_headers"`
	OutputTag      string            `json:"output_tag" yaml:"output_tag"`
}

type configFile struct {
	Scripts []Script `json:"scripts" yaml:"scripts"`
}

// Registry indexes scripts by id, keeping declaration order.
type Registry struct {
	mu      sync.RWMutex
	scripts []Script
	idx     map[string]Script
}

// DefaultRegistry parses the descriptors compiled into the binary.
func DefaultRegistry() (*Registry, error) {
	return ParseRegistry(defaultScripts, ".yaml")
}

// ParseRegistry decodes, sanitizes and validates a YAML or JSON descriptor document.
func ParseRegistry(data []byte, ext string) (*Registry, error) {
	file, err := decodeConfigFile(data, ext)
	if err != nil {
		return nil, err
	}
	if len(file.Scripts) == 0 {
		return nil, errors.New("scripts document contains no scripts entries")
	}

	reg := &Registry{
		scripts: make([]Script, len(file.Scripts)),
		idx:     make(map[string]Script, len(file.Scripts)),
	}
	for i := range file.Scripts {
		s := sanitizeScript(file.Scripts[i])
		if err := validateScript(s); err != nil {
			return nil, fmt.Errorf("scripts[%d]: %w", i, err)
		}
		if _, exists := reg.idx[s.ID]; exists {
			return nil, fmt.Errorf("duplicate script id %q", s.ID)
		}
		reg.scripts[i] = s
		reg.idx[s.ID] = s
	}
	return reg, nil
}

func decodeConfigFile(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var file configFile
		if err := d.fn(data, &file); err == nil {
			return file, nil
		}
	}
	return configFile{}, errors.New("scripts document format not recognized (expected YAML or JSON)")
}

func sanitizeScript(s Script) Script {
	s.ID = strings.ToLower(strings.TrimSpace(s.ID))
	s.Name = strings.TrimSpace(s.Name)
	s.Method = strings.ToUpper(strings.TrimSpace(s.Method))
	if s.Method == "" {
		s.Method = http.MethodGet
	}
	s.URL = strings.TrimSpace(s.URL)
	s.OutputTag = strings.TrimSpace(s.OutputTag)

	headers := make([]HeaderEntry, 0, len(s.Headers))
	for _, h := range s.Headers {
		h.Name = strings.TrimSpace(h.Name)
		h.Value = strings.TrimSpace(h.Value)
		if h.Name == "" {
			continue
		}
		headers = append(headers, h)
	}
	if len(headers) == 0 {
		headers = nil
	}
	s.Headers = headers

	if len(s.Fields) == 0 {
		s.Fields = nil
	}
	return s
}

func validateScript(s Script) error {
	if s.ID == "" {
		return errors.New("id is required")
	}
	switch s.Method {
	case http.MethodGet, http.MethodPost:
	default:
		return fmt.Errorf("unsupported method %q for script %q", s.Method, s.ID)
	}
	if s.URL == "" {
		return fmt.Errorf("url is required for script %q", s.ID)
	}
	u, err := url.Parse(s.URL)
	if err != nil {
		return fmt.Errorf("parse url for script %q: %w", s.ID, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url for script %q must be http or https", s.ID)
	}
	if s.Method == http.MethodGet && len(s.Fields) > 0 {
		return fmt.Errorf("fields are only allowed on POST (script %q)", s.ID)
	}
	return nil
}

// ByID returns the script with the given id.
func (r *Registry) ByID(id string) (Script, bool) {
	if r == nil {
		return Script{}, false
	}
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return Script{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.idx[id]
	return s, ok
}

// All returns every script in declaration order.
func (r *Registry) All() []Script {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Script, len(r.scripts))
	copy(out, r.scripts)
	return out
}

// Request builds the outgoing request for this script.
func (s Script) Request() (domain.Request, error) {
	req := domain.Request{
		URL:            s.URL,
		Method:         s.Method,
		IncludeHeaders: s.IncludeHeaders,
		OutputTag:      s.OutputTag,
	}
	for _, h := range s.Headers {
		req.Headers = append(req.Headers, domain.Header{Name: h.Name, Value: h.Value})
	}
	if len(s.Fields) > 0 {
		body, err := EncodeFields(s.Fields)
		if err != nil {
			return domain.Request{}, fmt.Errorf("script %s: %w", s.ID, err)
		}
		req.Body = body
	}
	return req, nil
}

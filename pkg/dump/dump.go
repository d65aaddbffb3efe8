// Package dump writes ad-hoc debug representations of values.
package dump

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
)

// Dumper prints values with their type and length, meant for eyeballing
// rather than parsing.
type Dumper struct {
	cfg *spew.ConfigState
}

// New returns a Dumper with stable output: sorted map keys and no pointer
// addresses or capacities.
func New() *Dumper {
	return &Dumper{cfg: &spew.ConfigState{
		Indent:                  "  ",
		SortKeys:                true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}}
}

// Dump writes tag verbatim, followed immediately by the dump of v.
func (d *Dumper) Dump(w io.Writer, tag string, v interface{}) error {
	if d == nil || d.cfg == nil {
		d = New()
	}
	if tag != "" {
		if _, err := io.WriteString(w, tag); err != nil {
			return fmt.Errorf("write output tag: %w", err)
		}
	}
	d.cfg.Fdump(w, v)
	return nil
}

// Sdump returns the dump of v as a string.
func (d *Dumper) Sdump(v interface{}) string {
	if d == nil || d.cfg == nil {
		d = New()
	}
	return d.cfg.Sdump(v)
}

package encoder

import (
	"fmt"
	"strings"
)

// priority is the order formats are listed in.
var priority = []string{"png", "jpeg", "bmp"}

// Registry holds all available preview encoders.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}

	all := []Encoder{
		&PNGEncoder{},
		&JPEGEncoder{},
		&BMPEncoder{},
	}
	for _, enc := range all {
		if enc.Available() {
			r.encoders[enc.Format()] = enc
		}
	}
	return r
}

// Get returns an encoder for the given format, or nil if unavailable.
// "jpg" is accepted as an alias for "jpeg".
func (r *Registry) Get(format string) Encoder {
	format = strings.ToLower(format)
	if format == "jpg" {
		format = "jpeg"
	}
	return r.encoders[format]
}

// Resolve is Get with an error naming the available formats.
func (r *Registry) Resolve(format string) (Encoder, error) {
	if enc := r.Get(format); enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("unknown preview format %q (%s)", format, r.String())
}

// Available returns all available format names.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range priority {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}

package uxpin

import (
	"github.com/shapestone/shape-uxpin/internal/normalize"
)

// Options configures parsing and rendering.
type Options struct {
	// Comma is the field delimiter. Default: ','
	Comma rune

	// DefaultScheme is prefixed to link hrefs that carry no URL scheme.
	// Default: "http://"
	DefaultScheme string
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Comma:         ',',
		DefaultScheme: normalize.DefaultScheme,
	}
}

// withDefaults fills zero values from DefaultOptions.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Comma == 0 {
		o.Comma = def.Comma
	}
	if o.DefaultScheme == "" {
		o.DefaultScheme = def.DefaultScheme
	}
	return o
}

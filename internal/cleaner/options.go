// Package cleaner sanitizes page-builder HTML: builder classes, redundant
// wrappers, relative links and images.
package cleaner

import "strings"

// Options switches the cleaning steps independently.
type Options struct {
	RemoveBuilderClasses bool
	SimplifyStructure    bool
	ResponsiveImages     bool
	// RewriteLinks only has an effect when BaseDomain is set.
	RewriteLinks bool
	BaseDomain   string
}

// DefaultOptions enables every step. Links stay untouched until a base
// domain is given.
func DefaultOptions() Options {
	return Options{
		RemoveBuilderClasses: true,
		SimplifyStructure:    true,
		ResponsiveImages:     true,
		RewriteLinks:         true,
	}
}

// WithBaseDomain returns a copy of o rewriting links against domain.
func (o Options) WithBaseDomain(domain string) Options {
	o.BaseDomain = domain
	return o
}

func (o Options) rewritesLinks() bool {
	return o.RewriteLinks && strings.TrimSpace(o.BaseDomain) != ""
}

// Package csp builds Content-Security-Policy header values.
package csp

import "strings"

// Header names.
const (
	HeaderEnforce    = "Content-Security-Policy"
	HeaderReportOnly = "Content-Security-Policy-Report-Only"
)

// directiveOrder fixes the order directives appear in Build output.
var directiveOrder = []string{
	"default-src",
	"script-src",
	"style-src",
	"img-src",
	"connect-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
	"report-uri",
}

// Policy is a set of CSP directives. The zero value is not usable; call
// NewPolicy. A Policy is not safe for concurrent mutation, but Build may be
// called concurrently once the policy is fully configured.
type Policy struct {
	directives map[string][]string
	reportOnly bool
}

// NewPolicy returns an empty policy.
func NewPolicy() *Policy {
	return &Policy{directives: make(map[string][]string)}
}

// Directive sets the sources of one directive, replacing earlier values.
// Unknown directive names are ignored by Build.
func (p *Policy) Directive(name string, sources ...string) *Policy {
	p.directives[name] = sources
	return p
}

// ReportOnly switches the policy to report-only mode.
func (p *Policy) ReportOnly(enabled bool) *Policy {
	p.reportOnly = enabled
	return p
}

// Build renders the header value, e.g.
// "default-src 'none'; frame-ancestors 'none'". An empty policy renders "".
func (p *Policy) Build() string {
	parts := make([]string, 0, len(p.directives))
	for _, name := range directiveOrder {
		if sources := p.directives[name]; len(sources) > 0 {
			parts = append(parts, name+" "+strings.Join(sources, " "))
		}
	}
	return strings.Join(parts, "; ")
}

// HeaderName returns the header the policy should be sent in.
func (p *Policy) HeaderName() string {
	if p.reportOnly {
		return HeaderReportOnly
	}
	return HeaderEnforce
}

// APIPolicy is the policy for JSON endpoints: nothing may be loaded or
// framed, and responses are never treated as documents with active content.
func APIPolicy() *Policy {
	return NewPolicy().
		Directive("default-src", "'none'").
		Directive("frame-ancestors", "'none'").
		Directive("base-uri", "'none'").
		Directive("form-action", "'none'")
}

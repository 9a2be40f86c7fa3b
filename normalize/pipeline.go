// Package normalize cleans translated text with a fixed sequence of pure
// string transforms.
//
// The order is part of the contract:
//
//  1. HTML entity unescape
//  2. emoji to :name: tokens
//  3. @username removal
//  4. hyperlink removal
//  5. whitespace collapse
//  6. curly double quotes to ASCII
//  7. optional ASCII character-set restriction (always last)
//
// Every step is total; Apply never fails.
package normalize

// Step is one named transform of the pipeline.
type Step struct {
	Name  string
	Apply func(string) string
}

// Pipeline is an ordered, immutable list of steps. It is safe for
// concurrent use.
type Pipeline struct {
	steps []Step
}

// Option configures a Pipeline.
type Option func(*options)

type options struct {
	restrictCharset bool
}

// WithCharsetRestriction appends the ASCII character-set restriction step.
func WithCharsetRestriction(enabled bool) Option {
	return func(o *options) {
		o.restrictCharset = enabled
	}
}

// New builds the standard pipeline.
func New(opts ...Option) *Pipeline {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	steps := []Step{
		{"unescape_html", UnescapeHTML},
		{"demojize", Demojize},
		{"strip_usernames", StripUsernames},
		{"strip_hyperlinks", StripHyperlinks},
		{"collapse_whitespace", CollapseWhitespace},
		{"standardize_quotes", StandardizeQuotes},
	}
	if o.restrictCharset {
		steps = append(steps, Step{"restrict_charset", RestrictCharset})
	}

	return &Pipeline{steps: steps}
}

// Apply runs every step in order.
func (p *Pipeline) Apply(s string) string {
	for _, step := range p.steps {
		s = step.Apply(s)
	}
	return s
}

// Steps returns the step names in execution order.
func (p *Pipeline) Steps() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name
	}
	return names
}

// RestrictsCharset reports whether the pipeline ends with the charset step.
func (p *Pipeline) RestrictsCharset() bool {
	return len(p.steps) > 0 && p.steps[len(p.steps)-1].Name == "restrict_charset"
}

package cleaner

import (
	"github.com/andybalholm/cascadia"
	"github.com/go-shiori/dom"
)

// ExtractSection returns the inner HTML of the first element matching
// selector in the cleaned content. When nothing matches it searches the
// builder raw data with the same selector, and when that fails too it
// returns the whole cleaned content. An invalid selector matches nothing.
func ExtractSection(content, selector string, builderRaw []byte, opts Options) string {
	cleaned := Clean(content, opts)
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return cleaned
	}
	if root, err := Parse(cleaned); err == nil {
		if n := sel.MatchFirst(root); n != nil {
			return dom.InnerHTML(n)
		}
	}
	if frag := BuilderHTML(builderRaw); frag != "" {
		if root, err := Parse(frag); err == nil {
			if n := sel.MatchFirst(root); n != nil {
				return Clean(dom.InnerHTML(n), opts)
			}
		}
	}
	return cleaned
}

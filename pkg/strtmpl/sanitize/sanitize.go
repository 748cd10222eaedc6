// Package sanitize provides slots that clean untrusted HTML before it is
// substituted into a template.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/randalmurphal/strtmpl/pkg/strtmpl"
)

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy

	ugcOnce   sync.Once
	ugcPolicy *bluemonday.Policy
)

// HTML returns a computed slot labelled "html" that sanitizes its value with
// policy. Surrounding whitespace is trimmed from the result. A nil policy panics.
func HTML(policy *bluemonday.Policy) strtmpl.Slot[string] {
	if policy == nil {
		panic("sanitize: nil policy")
	}
	return strtmpl.Labeled("html", func(raw string) (string, error) {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return "", nil
		}
		return strings.TrimSpace(policy.Sanitize(trimmed)), nil
	})
}

// Strict returns a slot that strips every HTML element and keeps the text.
func Strict() strtmpl.Slot[string] {
	return HTML(StrictPolicy())
}

// UGC returns a slot that keeps the markup safe for user generated content
// (links, emphasis, lists) and drops the rest.
func UGC() strtmpl.Slot[string] {
	return HTML(UGCPolicy())
}

// StrictPolicy returns the shared strict policy.
func StrictPolicy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// UGCPolicy returns the shared user generated content policy.
func UGCPolicy() *bluemonday.Policy {
	ugcOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
	})
	return ugcPolicy
}

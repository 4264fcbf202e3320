package markup

import "github.com/microcosm-cc/bluemonday"

// Sanitizer strips scripts, event handlers and other unsafe markup while
// keeping the formatting tags used in user generated content.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.UGCPolicy()}
}

func (s *Sanitizer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}

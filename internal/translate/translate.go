// Package translate converts git remote URIs into browsable web URLs.
//
// Translation is a pure, order-sensitive pipeline: user-defined rules are
// consulted first (first match wins and overrides the built-in logic), then
// HTTP(S) URIs pass through unchanged, then SSH shorthand is rewritten to
// HTTPS. Anything else has no browsable form.
package translate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jfcherng/gitweb/internal/domain"
)

// Rule is one compiled translation rule.
type Rule struct {
	search  *regexp.Regexp
	replace string
}

// CompileRules compiles user-supplied rules, preserving their order.
// An invalid search pattern is a configuration error.
func CompileRules(rules []domain.TranslationRule) ([]Rule, error) {
	compiled := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		re, err := regexp.Compile(rule.Search)
		if err != nil {
			return nil, fmt.Errorf("invalid translation rule %q: %w", rule.Search, err)
		}
		compiled = append(compiled, Rule{search: re, replace: rule.Replace})
	}
	return compiled, nil
}

// Translator applies compiled rules and the built-in translations.
// It implements domain.Translator.
type Translator struct {
	rules []Rule
}

// NewTranslator creates a Translator over the given compiled rules.
func NewTranslator(rules []Rule) *Translator {
	return &Translator{rules: rules}
}

// Translate converts uri to a browsable web URL. The boolean is false when
// the URI has no known browsable form; that is a legitimate outcome, not an
// error.
func (t *Translator) Translate(uri string) (string, bool) {
	// user-defined rules: first rule matching at the start of the URI wins
	for _, rule := range t.rules {
		if loc := rule.search.FindStringIndex(uri); loc != nil && loc[0] == 0 {
			return rule.search.ReplaceAllString(uri, rule.replace), true
		}
	}

	// already a web URL
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return uri, true
	}

	// SSH shorthand used by Bitbucket / GitHub / GitLab / ...
	// e.g. git@github.com:jfcherng-sublime/ST-CommandAndMenu.git
	if rest, ok := strings.CutPrefix(uri, "git@"); ok {
		idx := strings.LastIndex(rest, ":")
		if idx < 0 {
			return "", false
		}
		return "https://" + rest[:idx] + "/" + rest[idx+1:], true
	}

	return "", false
}

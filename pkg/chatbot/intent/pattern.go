package intent

import (
	"errors"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidWeight = errors.New("rule weight must be in (0, 1]")
	ErrEmptyTable    = errors.New("pattern table has no rules")
)

// RuleSpec is the uncompiled form of a rule as it appears in the bank.
type RuleSpec struct {
	Pattern string  `yaml:"pattern"`
	Intent  Intent  `yaml:"intent"`
	Weight  float64 `yaml:"weight"`
}

// PatternRule maps a compiled matcher to an intent with a weight.
type PatternRule struct {
	Pattern *regexp.Regexp
	Intent  Intent
	Weight  float64
}

// PatternTable is an ordered, immutable list of rules. Declaration order
// is the tie-break between rules of equal weight: the earlier rule wins.
type PatternTable struct {
	rules []PatternRule
}

// NewPatternTable compiles the given specs in order. Patterns are matched
// case-insensitively.
func NewPatternTable(specs []RuleSpec) (*PatternTable, error) {
	if len(specs) == 0 {
		return nil, ErrEmptyTable
	}

	rules := make([]PatternRule, 0, len(specs))
	for i, rs := range specs {
		if rs.Weight <= 0 || rs.Weight > 1 {
			return nil, fmt.Errorf("rule %d (%s): %w", i, rs.Intent, ErrInvalidWeight)
		}
		if rs.Intent == "" {
			return nil, fmt.Errorf("rule %d: missing intent", i)
		}
		re, err := regexp.Compile("(?i)" + rs.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, rs.Intent, err)
		}
		rules = append(rules, PatternRule{Pattern: re, Intent: rs.Intent, Weight: rs.Weight})
	}

	return &PatternTable{rules: rules}, nil
}

// ParsePatternTable decodes a YAML document of the form `rules: [...]`.
func ParsePatternTable(data []byte) (*PatternTable, error) {
	var doc struct {
		Rules []RuleSpec `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode pattern table: %w", err)
	}
	return NewPatternTable(doc.Rules)
}

// Len returns the number of rules.
func (t *PatternTable) Len() int {
	return len(t.rules)
}

// Rules returns a copy of the rules in declaration order.
func (t *PatternTable) Rules() []PatternRule {
	out := make([]PatternRule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Intents returns the distinct intents in first-declared order.
func (t *PatternTable) Intents() []Intent {
	seen := make(map[Intent]struct{}, len(t.rules))
	var out []Intent
	for _, r := range t.rules {
		if _, ok := seen[r.Intent]; ok {
			continue
		}
		seen[r.Intent] = struct{}{}
		out = append(out, r.Intent)
	}
	return out
}

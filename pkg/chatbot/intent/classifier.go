package intent

import "strings"

// Classifier picks the best weighted rule matching a message.
type Classifier struct {
	table *PatternTable
}

// NewClassifier creates a classifier over a loaded table.
func NewClassifier(table *PatternTable) *Classifier {
	return &Classifier{table: table}
}

// Classify returns the intent of the highest-weighted matching rule.
// A later rule replaces the running best only with a strictly greater
// weight. No match yields (Unknown, 0).
func (c *Classifier) Classify(message string) Result {
	normalized := strings.ToLower(strings.TrimSpace(message))

	best := Result{Intent: Unknown, Confidence: 0}
	if normalized == "" {
		return best
	}

	for _, rule := range c.table.rules {
		if rule.Weight <= best.Confidence {
			continue
		}
		if rule.Pattern.MatchString(normalized) {
			best = Result{Intent: rule.Intent, Confidence: rule.Weight}
		}
	}

	return best
}

// PatternCount returns the number of rules behind the classifier.
func (c *Classifier) PatternCount() int {
	return c.table.Len()
}

// Intents returns the intents the classifier can produce, excluding Unknown.
func (c *Classifier) Intents() []Intent {
	return c.table.Intents()
}

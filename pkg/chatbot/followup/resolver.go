// Package followup rewrites unclassified fragments like "and for SK?" into
// a candidate query, using the intent of the previous turn.
package followup

import (
	"regexp"

	"election-assistant-be/pkg/chatbot/intent"
)

var (
	skReference      = regexp.MustCompile(`(?i)\b(sk|sangguniang kabataan)\b`)
	kapitanReference = regexp.MustCompile(`(?i)\b(kapitan|barangay captain)\b`)
	kagawadReference = regexp.MustCompile(`(?i)\b(kagawad|councilor)\b`)
)

// edge is one hop in the follow-up graph: from any of the previous intents,
// a message matching ref moves to target.
type edge struct {
	from   []intent.Intent
	ref    *regexp.Regexp
	target intent.Intent
}

// Resolver walks a fixed adjacency graph over the three position queries.
type Resolver struct {
	edges []edge
}

func NewResolver() *Resolver {
	return &Resolver{
		edges: []edge{
			{
				from:   []intent.Intent{intent.KapitanCandidates, intent.KagawadCandidates},
				ref:    skReference,
				target: intent.SKCandidates,
			},
			{
				from:   []intent.Intent{intent.SKCandidates},
				ref:    kapitanReference,
				target: intent.KapitanCandidates,
			},
			{
				from:   []intent.Intent{intent.KapitanCandidates, intent.SKCandidates},
				ref:    kagawadReference,
				target: intent.KagawadCandidates,
			},
		},
	}
}

// Resolve only rewrites Unknown. The first matching edge wins; with no
// match the input intent is returned unchanged.
func (r *Resolver) Resolve(message string, current, last intent.Intent) intent.Intent {
	if current != intent.Unknown {
		return current
	}

	for _, e := range r.edges {
		if !contains(e.from, last) {
			continue
		}
		if e.ref.MatchString(message) {
			return e.target
		}
	}

	return current
}

func contains(list []intent.Intent, in intent.Intent) bool {
	for _, x := range list {
		if x == in {
			return true
		}
	}
	return false
}

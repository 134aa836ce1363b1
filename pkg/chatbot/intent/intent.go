// Package intent classifies election questions with an ordered table of
// weighted regular expressions.
package intent

// Intent is a flat classification tag shared by the pattern table, the
// template bank and the follow-up suggestion table.
type Intent string

const (
	Greeting          Intent = "greeting"
	KapitanCandidates Intent = "kapitan_candidates"
	SKCandidates      Intent = "sk_candidates"
	KagawadCandidates Intent = "kagawad_candidates"
	AllCandidates     Intent = "all_candidates"
	CandidateDetail   Intent = "candidate_detail"
	VotingProcess     Intent = "voting_process"
	Eligibility       Intent = "eligibility"
	Registration      Intent = "registration"
	Security          Intent = "security"
	ElectionDate      Intent = "election_date"
	ResultsInfo       Intent = "results_info"
	Importance        Intent = "importance"
	TechnicalIssue    Intent = "technical_issue"
	PlatformInfo      Intent = "platform_info"
	PositionsInfo     Intent = "positions_info"
	Thanks            Intent = "thanks"
	Goodbye           Intent = "goodbye"
	Help              Intent = "help"
	Unknown           Intent = "unknown"
)

// IsCandidateQuery reports whether the intent is answered from the
// candidate catalog instead of the template bank.
func (i Intent) IsCandidateQuery() bool {
	switch i {
	case KapitanCandidates, SKCandidates, KagawadCandidates, AllCandidates:
		return true
	}
	return false
}

// IsSmallTalk reports whether replies for the intent skip the
// conversational opener.
func (i Intent) IsSmallTalk() bool {
	switch i {
	case Greeting, Thanks, Goodbye, Unknown:
		return true
	}
	return false
}

func (i Intent) String() string {
	return string(i)
}

// Result is the outcome of a classification.
type Result struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

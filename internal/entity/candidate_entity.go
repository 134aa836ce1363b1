package entity

// Candidate is a raw row of the candidate list, before the catalog decides
// which position it belongs to.
type Candidate struct {
	Id       uint
	Position string
	Name     string
	Party    string
}

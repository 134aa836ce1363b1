// Package catalog holds the read-only list of election candidates grouped
// by position, and renders it for chat replies.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"election-assistant-be/internal/pkg/logger"
	"election-assistant-be/pkg/chatbot/intent"
)

type Position string

const (
	BarangayKapitan Position = "Barangay Kapitan"
	SKChairman      Position = "SK Chairman"
	Kagawad         Position = "Kagawad"
)

// Positions lists the known positions in display order.
var Positions = []Position{BarangayKapitan, SKChairman, Kagawad}

var ErrUnknownPosition = errors.New("unknown position")

type Candidate struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}

// Record is one row of the source list.
type Record struct {
	Position string
	Name     string
	Party    string
}

// Source yields candidate rows. A source may return the rows it managed to
// read together with an error.
type Source interface {
	Name() string
	Records(ctx context.Context) ([]Record, error)
}

// Stats are the per-position counts reported by the health endpoint.
type Stats struct {
	Total      int `json:"total"`
	Kapitan    int `json:"kapitan"`
	SKChairman int `json:"sk_chairman"`
	Kagawad    int `json:"kagawad"`
}

// Catalog is filled once by Load and only read afterwards.
type Catalog struct {
	candidates map[Position][]Candidate
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{candidates: make(map[Position][]Candidate, len(Positions))}
}

// Load reads the source into a new catalog. Read errors are logged and the
// catalog keeps whatever rows were read, possibly none.
func Load(ctx context.Context, src Source, log logger.ILogger) *Catalog {
	c := New()

	records, err := src.Records(ctx)
	if err != nil {
		log.Error("CandidateCatalog", "Failed to load candidates", map[string]interface{}{
			"source": src.Name(),
			"error":  err.Error(),
			"rows":   len(records),
		})
	}

	skipped := 0
	for _, r := range records {
		if !c.add(r) {
			skipped++
		}
	}

	stats := c.Stats()
	log.Info("CandidateCatalog", "Candidates loaded", map[string]interface{}{
		"source":      src.Name(),
		"kapitan":     stats.Kapitan,
		"sk_chairman": stats.SKChairman,
		"kagawad":     stats.Kagawad,
		"skipped":     skipped,
	})

	return c
}

func (c *Catalog) add(r Record) bool {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return false
	}
	pos, ok := ClassifyPosition(r.Position)
	if !ok {
		return false
	}
	c.candidates[pos] = append(c.candidates[pos], Candidate{
		Name:  name,
		Party: strings.TrimSpace(r.Party),
	})
	return true
}

// ClassifyPosition maps a raw position cell to a known position. Kagawad
// rows ("Kagawad 1", "Barangay Kagawad") match on substring, the others
// must match exactly.
func ClassifyPosition(raw string) (Position, bool) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == string(BarangayKapitan):
		return BarangayKapitan, true
	case raw == string(SKChairman):
		return SKChairman, true
	case strings.Contains(strings.ToLower(raw), "kagawad"):
		return Kagawad, true
	}
	return "", false
}

// PositionFor returns the position a candidate-query intent asks about.
func PositionFor(in intent.Intent) (Position, error) {
	switch in {
	case intent.KapitanCandidates:
		return BarangayKapitan, nil
	case intent.SKCandidates:
		return SKChairman, nil
	case intent.KagawadCandidates:
		return Kagawad, nil
	}
	return "", fmt.Errorf("%w for intent %s", ErrUnknownPosition, in)
}

// ByPosition returns a copy of the candidates for a position.
func (c *Catalog) ByPosition(p Position) []Candidate {
	list := c.candidates[p]
	out := make([]Candidate, len(list))
	copy(out, list)
	return out
}

// FindByName returns the first candidate whose full name occurs in the
// message, searching positions in display order.
func (c *Catalog) FindByName(message string) (Candidate, Position, bool) {
	msg := strings.ToLower(message)
	for _, p := range Positions {
		for _, cand := range c.candidates[p] {
			if strings.Contains(msg, strings.ToLower(cand.Name)) {
				return cand, p, true
			}
		}
	}
	return Candidate{}, "", false
}

func (c *Catalog) Stats() Stats {
	s := Stats{
		Kapitan:    len(c.candidates[BarangayKapitan]),
		SKChairman: len(c.candidates[SKChairman]),
		Kagawad:    len(c.candidates[Kagawad]),
	}
	s.Total = s.Kapitan + s.SKChairman + s.Kagawad
	return s
}

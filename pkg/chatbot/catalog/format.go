package catalog

import (
	"fmt"
	"strings"
)

// Format renders one position's list. An empty position gets an explicit
// "nothing found" line, never an empty list.
func (c *Catalog) Format(p Position) string {
	list := c.candidates[p]
	if len(list) == 0 {
		return fmt.Sprintf("Walang nahanap na kandidato para sa %s sa database.", p)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Mga Kandidato para sa %s:**\n\n", p)
	for i, cand := range list {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "• %s (%s)", cand.Name, cand.Party)
	}
	fmt.Fprintf(&sb, "\n\n📊 Kabuuang kandidato: %d", len(list))
	return sb.String()
}

// FormatAll renders every position in display order.
func (c *Catalog) FormatAll() string {
	var sb strings.Builder
	sb.WriteString("**Lahat ng Kandidato / All Candidates:**\n\n")
	for _, p := range Positions {
		sb.WriteString(c.Format(p))
		sb.WriteString("\n\n")
	}
	sb.WriteString("🗳️ Piliin nang mabuti! Choose wisely!")
	return sb.String()
}

// FormatDetail renders a single candidate card.
func FormatDetail(cand Candidate, p Position) string {
	return fmt.Sprintf("**%s**\n\nPosisyon: %s\nPartido: %s\n\n🎯 Good luck sa lahat ng mga kandidato!\n\nMay iba ka pang gustong malaman tungkol sa kandidatong ito?",
		cand.Name, p, cand.Party)
}

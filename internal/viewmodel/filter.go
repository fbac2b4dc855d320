package viewmodel

import (
	"fmt"
	"strings"

	"github.com/cardcol/cardcol/internal/catalog"
)

// Ownership filters cards by whether any copies are owned.
type Ownership string

const (
	OwnershipAll         Ownership = "all"
	OwnershipCollected   Ownership = "collected"
	OwnershipUncollected Ownership = "uncollected"
)

// ParseOwnership accepts all, collected or uncollected. Empty means all.
func ParseOwnership(s string) (Ownership, error) {
	switch o := Ownership(strings.ToLower(strings.TrimSpace(s))); o {
	case "", OwnershipAll:
		return OwnershipAll, nil
	case OwnershipCollected, OwnershipUncollected:
		return o, nil
	default:
		return OwnershipAll, fmt.Errorf("unknown ownership filter %q", s)
	}
}

func (o Ownership) matches(card catalog.Card) bool {
	switch o {
	case OwnershipCollected:
		return card.InCollection > 0
	case OwnershipUncollected:
		return card.InCollection == 0
	default:
		return true
	}
}

// Summary is the set of aggregates shown under a listing.
type Summary struct {
	Visible          int `json:"visible"`
	Total            int `json:"total"`
	CollectedVisible int `json:"collected_visible"`
	TotalCopies      int `json:"total_copies"`
}

// CollectedVisible counts visible cards with at least one owned copy.
func (c *Catalog) CollectedVisible() int {
	n := 0
	for _, card := range c.Visible() {
		if card.Collected() {
			n++
		}
	}
	return n
}

// TotalCopies sums owned copies over the whole cache, ignoring filters.
func (c *Catalog) TotalCopies() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0
	for _, card := range c.all {
		total += card.InCollection
	}
	return total
}

// Summary computes every aggregate from one projection.
func (c *Catalog) Summary() Summary {
	visible := c.Visible()
	s := Summary{Visible: len(visible), TotalCopies: c.TotalCopies()}
	for _, card := range visible {
		if card.Collected() {
			s.CollectedVisible++
		}
	}
	c.mu.RLock()
	s.Total = len(c.all)
	c.mu.RUnlock()
	return s
}

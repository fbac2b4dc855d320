package viewmodel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cardcol/cardcol/internal/catalog"
)

// SortKey names a card field the projection can be ordered by.
type SortKey string

const (
	SortNone             SortKey = ""
	SortName             SortKey = "name"
	SortNumber           SortKey = "number"
	SortInCollection     SortKey = "in_collection"
	SortRarity           SortKey = "rarity"
	SortCardType         SortKey = "card_type"
	SortCollectionNumber SortKey = "collection_number"
	SortSeries           SortKey = "series"
)

// SortKeys lists every accepted key.
var SortKeys = []SortKey{
	SortName, SortNumber, SortInCollection, SortRarity,
	SortCardType, SortCollectionNumber, SortSeries,
}

// ParseSortKey validates a key given on the command line or over MCP.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if key == SortNone {
		return SortNone, nil
	}
	for _, known := range SortKeys {
		if key == known {
			return key, nil
		}
	}
	return SortNone, fmt.Errorf("unknown sort key %q", s)
}

// Direction is ascending or descending.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// SortState is the active sort. A zero value means unsorted.
type SortState struct {
	Key       SortKey
	Direction Direction
}

// Active reports whether a sort key is set.
func (s SortState) Active() bool {
	return s.Key != SortNone
}

// SortBy applies a column click: the same key while ascending flips to
// descending, anything else sorts ascending on key. The cached cards are
// reordered so the order survives filter changes.
func (c *Catalog) SortBy(key SortKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sort.Key == key && c.sort.Direction == Ascending {
		c.sort.Direction = Descending
	} else {
		c.sort = SortState{Key: key, Direction: Ascending}
	}
	c.applySort()
}

// SetSort sets the sort state directly.
func (c *Catalog) SetSort(state SortState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sort = state
	c.applySort()
}

// Sort returns the active sort state.
func (c *Catalog) Sort() SortState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sort
}

// applySort must be called with mu held for writing.
func (c *Catalog) applySort() {
	defer c.reindex()
	if !c.sort.Active() {
		return
	}

	cmp := c.comparator(c.sort.Key)
	desc := c.sort.Direction == Descending
	sort.SliceStable(c.all, func(i, j int) bool {
		if desc {
			return cmp(c.all[i], c.all[j]) > 0
		}
		return cmp(c.all[i], c.all[j]) < 0
	})
}

func (c *Catalog) comparator(key SortKey) func(a, b catalog.Card) int {
	text := func(field func(catalog.Card) string) func(a, b catalog.Card) int {
		return func(a, b catalog.Card) int {
			return c.collator.CompareString(field(a), field(b))
		}
	}
	number := func(field func(catalog.Card) int64) func(a, b catalog.Card) int {
		return func(a, b catalog.Card) int {
			d := field(a) - field(b)
			switch {
			case d < 0:
				return -1
			case d > 0:
				return 1
			}
			return 0
		}
	}

	switch key {
	case SortNumber:
		return text(func(card catalog.Card) string { return card.Number })
	case SortInCollection:
		return number(func(card catalog.Card) int64 { return int64(card.InCollection) })
	case SortRarity:
		return text(func(card catalog.Card) string { return card.Rarity.Name })
	case SortCardType:
		return text(func(card catalog.Card) string { return card.CardType.Display() })
	case SortCollectionNumber:
		return number(func(card catalog.Card) int64 { return int64(card.CollectionNumber) })
	case SortSeries:
		return number(func(card catalog.Card) int64 { return card.SeriesID })
	default:
		return text(func(card catalog.Card) string { return card.Name })
	}
}

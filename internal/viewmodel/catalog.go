// Package viewmodel keeps a local projection of the remote catalog: the cached
// card list, the filters and sort applied to it, and ownership adjustments that
// are reflected locally before the store confirms them.
package viewmodel

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cardcol/cardcol/internal/catalog"
	"github.com/cardcol/cardcol/internal/logger"
)

// Store is the remote catalog the view model reads from and adjusts through.
type Store interface {
	ListCards(ctx context.Context) ([]catalog.Card, error)
	SearchCards(ctx context.Context, name string) ([]catalog.Card, error)
	AdjustCard(ctx context.Context, number string, delta *int) (int, error)
	ListSeries(ctx context.Context) ([]catalog.Series, error)
}

// Catalog is the client side view of the card catalog.
type Catalog struct {
	store Store
	log   logger.Logger

	mu       sync.RWMutex
	collator *collate.Collator
	all      []catalog.Card
	index    map[string]int
	series   []catalog.Series

	seriesID  *int64
	search    string
	ownership Ownership
	rarities  map[string]struct{}
	sort      SortState

	locks *cardLocks
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used for refresh and adjustment events.
func WithLogger(log logger.Logger) Option {
	return func(c *Catalog) {
		c.log = log
	}
}

// WithLanguage sets the language used to order string sort keys.
func WithLanguage(tag language.Tag) Option {
	return func(c *Catalog) {
		c.collator = collate.New(tag, collate.Loose)
	}
}

// New creates an empty Catalog over store. Call Refresh to load it.
func New(store Store, opts ...Option) *Catalog {
	c := &Catalog{
		store:     store,
		log:       logger.Discard(),
		collator:  collate.New(language.English, collate.Loose),
		index:     map[string]int{},
		ownership: OwnershipAll,
		rarities:  map[string]struct{}{},
		locks:     newCardLocks(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithComponent("viewmodel")
	return c
}

// Refresh pulls cards and series from the store and replaces the local cache.
// The active sort is applied to the new cards.
func (c *Catalog) Refresh(ctx context.Context) error {
	var (
		cards  []catalog.Card
		series []catalog.Series
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cards, err = c.store.ListCards(gctx)
		if err != nil {
			return fmt.Errorf("failed to load cards: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		series, err = c.store.ListSeries(gctx)
		if err != nil {
			return fmt.Errorf("failed to load series: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	c.mu.Lock()
	c.replaceCards(cards)
	c.series = series
	c.mu.Unlock()

	c.log.WithFields(map[string]interface{}{
		"cards":  len(cards),
		"series": len(series),
	}).Debug("catalog refreshed")
	return nil
}

// RefreshSearch replaces the local cache with the store's name search result.
// An empty name reloads the whole catalog.
func (c *Catalog) RefreshSearch(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return c.Refresh(ctx)
	}

	cards, err := c.store.SearchCards(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to search cards: %w", err)
	}

	c.mu.Lock()
	c.replaceCards(cards)
	c.mu.Unlock()
	return nil
}

// replaceCards must be called with mu held for writing.
func (c *Catalog) replaceCards(cards []catalog.Card) {
	c.all = append([]catalog.Card(nil), cards...)
	c.applySort()
}

func (c *Catalog) reindex() {
	c.index = make(map[string]int, len(c.all))
	for i, card := range c.all {
		c.index[card.Number] = i
	}
}

// SelectSeries restricts the projection to one series. nil selects every series.
func (c *Catalog) SelectSeries(id *int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id == nil {
		c.seriesID = nil
		return
	}
	v := *id
	c.seriesID = &v
}

// SetSearch sets the name filter. Matching is a case-insensitive substring test.
func (c *Catalog) SetSearch(query string) {
	c.mu.Lock()
	c.search = query
	c.mu.Unlock()
}

// SetOwnership sets the ownership filter.
func (c *Catalog) SetOwnership(o Ownership) {
	c.mu.Lock()
	c.ownership = o
	c.mu.Unlock()
}

// ToggleRarity adds name to the selected rarities, or removes it if present.
func (c *Catalog) ToggleRarity(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.rarities[name]; ok {
		delete(c.rarities, name)
		return
	}
	c.rarities[name] = struct{}{}
}

// SetRarities replaces the selected rarities. An empty list clears the filter.
func (c *Catalog) SetRarities(names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rarities = make(map[string]struct{}, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			c.rarities[name] = struct{}{}
		}
	}
}

// SelectedRarities returns the selected rarity names in sorted order.
func (c *Catalog) SelectedRarities() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.rarities))
	for name := range c.rarities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Visible returns the projection: series, search, ownership and rarity filters
// applied in that order over the sorted cache.
func (c *Catalog) Visible() []catalog.Card {
	c.mu.RLock()
	defer c.mu.RUnlock()

	query := strings.ToLower(c.search)
	visible := make([]catalog.Card, 0, len(c.all))
	for _, card := range c.all {
		if c.seriesID != nil && card.SeriesID != *c.seriesID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(card.Name), query) {
			continue
		}
		if !c.ownership.matches(card) {
			continue
		}
		if len(c.rarities) > 0 {
			if _, ok := c.rarities[card.Rarity.Name]; !ok {
				continue
			}
		}
		visible = append(visible, card)
	}
	return visible
}

// All returns a copy of the cached catalog in its current base order.
func (c *Catalog) All() []catalog.Card {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]catalog.Card(nil), c.all...)
}

// Card looks up a cached card by number.
func (c *Catalog) Card(number string) (catalog.Card, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[number]
	if !ok {
		return catalog.Card{}, false
	}
	return c.all[i], true
}

// Series returns the cached series list.
func (c *Catalog) Series() []catalog.Series {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]catalog.Series(nil), c.series...)
}

// Rarities returns the distinct rarity names present in the cache.
func (c *Catalog) Rarities() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := map[string]struct{}{}
	names := []string{}
	for _, card := range c.all {
		if _, ok := seen[card.Rarity.Name]; ok || card.Rarity.Name == "" {
			continue
		}
		seen[card.Rarity.Name] = struct{}{}
		names = append(names, card.Rarity.Name)
	}
	sort.Strings(names)
	return names
}

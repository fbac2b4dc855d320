package viewmodel

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/cardcol/cardcol/internal/catalog"
)

var errStoreDown = errors.New("store unavailable")

type adjustCall struct {
	number string
	delta  int
}

// fakeStore is an in-memory Store. adjustHook, when set, runs before each
// adjustment is applied and may block or fail it.
type fakeStore struct {
	mu         sync.Mutex
	cards      []catalog.Card
	series     []catalog.Series
	calls      []adjustCall
	adjustHook func(ctx context.Context, call int, number string) error
}

func newFakeStore(cards ...catalog.Card) *fakeStore {
	return &fakeStore{
		cards: cards,
		series: []catalog.Series{
			{ID: 1, Name: "Legend of Blue Eyes White Dragon", Prefix: "LOB", CardCount: 3},
			{ID: 2, Name: "Metal Raiders", Prefix: "MRD", CardCount: 2},
		},
	}
}

func (s *fakeStore) ListCards(ctx context.Context) ([]catalog.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.Card(nil), s.cards...), nil
}

func (s *fakeStore) SearchCards(ctx context.Context, name string) ([]catalog.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []catalog.Card
	for _, card := range s.cards {
		if strings.Contains(strings.ToLower(card.Name), strings.ToLower(name)) {
			out = append(out, card)
		}
	}
	return out, nil
}

func (s *fakeStore) ListSeries(ctx context.Context) ([]catalog.Series, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.Series(nil), s.series...), nil
}

func (s *fakeStore) AdjustCard(ctx context.Context, number string, delta *int) (int, error) {
	d := 1
	if delta != nil {
		d = *delta
	}

	s.mu.Lock()
	call := len(s.calls)
	s.calls = append(s.calls, adjustCall{number: number, delta: d})
	hook := s.adjustHook
	s.mu.Unlock()

	if hook != nil {
		if err := hook(ctx, call, number); err != nil {
			return 0, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].Number == number {
			s.cards[i].InCollection += d
			return s.cards[i].InCollection, nil
		}
	}
	return 0, errors.New("not found")
}

func (s *fakeStore) count(number string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, card := range s.cards {
		if card.Number == number {
			return card.InCollection
		}
	}
	return -1
}

func card(number, name, rarity string, seriesID int64, owned int) catalog.Card {
	return catalog.Decorate(catalog.Card{
		Number:       number,
		Name:         name,
		SeriesID:     seriesID,
		InCollection: owned,
		Rarity:       catalog.Rarity{Name: rarity},
		CardType:     catalog.CardType{Main: catalog.MainMonster},
	})
}

func sampleCards() []catalog.Card {
	return []catalog.Card{
		card("LOB-001", "Blue-Eyes White Dragon", "Ultra Rare", 1, 2),
		card("LOB-002", "Mystical Elf", "Common", 1, 0),
		card("LOB-003", "Hitotsu-Me Giant", "Common", 1, 1),
		card("MRD-001", "Feral Imp", "Common", 2, 0),
		card("MRD-002", "Winged Dragon, Guardian of the Fortress #1", "Super Rare", 2, 3),
	}
}

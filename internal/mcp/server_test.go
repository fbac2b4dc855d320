package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardcol/cardcol/internal/catalog"
	"github.com/cardcol/cardcol/internal/logger"
	"github.com/cardcol/cardcol/internal/viewmodel"
)

type memoryStore struct {
	cards []catalog.Card
}

func (m *memoryStore) ListCards(ctx context.Context) ([]catalog.Card, error) {
	return append([]catalog.Card(nil), m.cards...), nil
}

func (m *memoryStore) SearchCards(ctx context.Context, name string) ([]catalog.Card, error) {
	return m.ListCards(ctx)
}

func (m *memoryStore) AdjustCard(ctx context.Context, number string, delta *int) (int, error) {
	d := 1
	if delta != nil {
		d = *delta
	}
	for i := range m.cards {
		if m.cards[i].Number == number {
			m.cards[i].InCollection += d
			return m.cards[i].InCollection, nil
		}
	}
	return 0, nil
}

func (m *memoryStore) ListSeries(ctx context.Context) ([]catalog.Series, error) {
	return []catalog.Series{{ID: 1, Name: "Starter Deck: Kaiba", Prefix: "SDK", CardCount: 2}}, nil
}

func setupServer(t *testing.T) *Server {
	t.Helper()
	store := &memoryStore{cards: []catalog.Card{
		{Number: "SDK-001", Name: "Blue-Eyes White Dragon", SeriesID: 1, Rarity: catalog.Rarity{Name: "Ultra Rare"}},
		{Number: "SDK-002", Name: "Hitotsu-Me Giant", SeriesID: 1, Rarity: catalog.Rarity{Name: "Common"}, InCollection: 1},
	}}
	vm := viewmodel.New(store)
	require.NoError(t, vm.Refresh(context.Background()))
	return NewServer(vm, "test", logger.Discard())
}

func TestHandleList(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	_, out, err := s.handleList(ctx, nil, ListInput{Ownership: "uncollected"})
	require.NoError(t, err)
	require.Len(t, out.Cards, 1)
	assert.Equal(t, "SDK-001", out.Cards[0].Number)
	assert.Equal(t, 1, out.Summary.TotalCopies)

	_, out, err = s.handleList(ctx, nil, ListInput{Sort: "name", Descending: true})
	require.NoError(t, err)
	require.Len(t, out.Cards, 2)
	assert.Equal(t, "SDK-002", out.Cards[0].Number)

	_, _, err = s.handleList(ctx, nil, ListInput{Sort: "price"})
	assert.Error(t, err)
}

func TestHandleListWithoutSortRestoresStoreOrder(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	_, out, err := s.handleList(ctx, nil, ListInput{Sort: "number", Descending: true})
	require.NoError(t, err)
	require.Len(t, out.Cards, 2)
	assert.Equal(t, "SDK-002", out.Cards[0].Number)

	_, out, err = s.handleList(ctx, nil, ListInput{})
	require.NoError(t, err)
	require.Len(t, out.Cards, 2)
	assert.Equal(t, "SDK-001", out.Cards[0].Number)
	assert.False(t, s.vm.Sort().Active())
}

func TestHandleAdjust(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	_, out, err := s.handleAdjust(ctx, nil, AdjustInput{Number: "SDK-001"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.InCollection)

	minus := -2
	_, _, err = s.handleAdjust(ctx, nil, AdjustInput{Number: "SDK-001", Delta: &minus})
	assert.ErrorIs(t, err, viewmodel.ErrNegativeCount)
}

func TestHandleAdjustCanonicalisesNumber(t *testing.T) {
	s := setupServer(t)

	_, out, err := s.handleAdjust(context.Background(), nil, AdjustInput{Number: "SDK-EN002"})
	require.NoError(t, err)
	assert.Equal(t, "SDK-002", out.Number)
	assert.Equal(t, 2, out.InCollection)
}

func TestHandleSeries(t *testing.T) {
	s := setupServer(t)

	_, out, err := s.handleSeries(context.Background(), nil, SeriesInput{})
	require.NoError(t, err)
	require.Len(t, out.Series, 1)
	assert.Equal(t, "SDK", out.Series[0].Prefix)
}

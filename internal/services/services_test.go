package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/cardcol/cardcol/internal/database"
)

func setupServiceDB(t *testing.T) *database.Context {
	t.Helper()
	ctx, err := database.CreateDatabase(filepath.Join(t.TempDir(), "cards.db"))
	if err != nil {
		t.Fatalf("CreateDatabase error: %v", err)
	}

	t.Cleanup(func() {
		if err := database.CloseDatabase(ctx); err != nil {
			t.Fatalf("CloseDatabase error: %v", err)
		}
	})

	return ctx
}

func seedLOB(t *testing.T, dbCtx *database.Context) *SeedResult {
	t.Helper()
	result, err := NewSeedService(dbCtx).Seed(context.Background(), SeedInput{
		Name:        "Legend of Blue Eyes White Dragon",
		ReleaseDate: "2002-03-08",
		Cards: []SeedCard{
			{Number: "LOB-EN001", Name: "Blue-Eyes White Dragon", Rarity: "Ultra Rare", Category: "Normal Monster"},
			{Number: "LOB-EN002", Name: "Mystical Elf", Rarity: "Common", Category: "Normal Monster"},
			{Number: "LOB-EN003", Name: "Dark Hole", Rarity: "Super Rare", Category: "Normal Spell Card"},
			{Number: "LOB-EN001", Name: "Blue-Eyes White Dragon", Rarity: "Ultra Rare", Category: "Normal Monster"},
			{Number: "", Name: "Broken row"},
		},
	})
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	return result
}

func TestSeedCanonicalisesAndSkipsDuplicates(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()

	result := seedLOB(t, dbCtx)
	if result.Inserted != 3 {
		t.Fatalf("expected 3 inserted cards, got %d", result.Inserted)
	}
	if len(result.Skipped) != 2 || result.Skipped[0] != "LOB-001" {
		t.Fatalf("unexpected skipped list %v", result.Skipped)
	}
	if result.Prefix != "LOB" {
		t.Fatalf("expected prefix LOB, got %q", result.Prefix)
	}

	cards, err := NewCardService(dbCtx).List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	first := cards[0]
	if first.Number != "LOB-001" || first.CollectionNumber != 1 || first.Rarity.Name != "Ultra Rare" {
		t.Fatalf("unexpected first card %#v", first)
	}
	if cards[2].CardType.Main != "Spell Card" || cards[2].CardType.Sub != "Normal" {
		t.Fatalf("unexpected card type %#v", cards[2].CardType)
	}

	series, err := NewSeriesService(dbCtx).List(ctx)
	if err != nil {
		t.Fatalf("series List failed: %v", err)
	}
	if len(series) != 1 || series[0].CardCount != 3 || series[0].Prefix != "LOB" {
		t.Fatalf("unexpected series %#v", series)
	}

	again := seedLOB(t, dbCtx)
	if again.Inserted != 0 || again.SeriesID != result.SeriesID {
		t.Fatalf("expected reseed to be a no-op, got %#v", again)
	}
}

func TestSeedNormalisesRarities(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()

	_, err := NewSeedService(dbCtx).Seed(ctx, SeedInput{
		Name:        "Metal Raiders",
		ReleaseDate: "2002-06-26",
		Cards: []SeedCard{
			{Number: "MRD-001", Name: "Feral Imp", Rarity: "Short Print", Category: "Normal Monster"},
			{Number: "MRD-002", Name: "Winged Dragon", Rarity: "Ultra Rare\nfoil", Category: "Normal Monster"},
			{Number: "MRD-003", Name: "Summoned Skull", Rarity: " \n", Category: "Normal Monster"},
		},
	})
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	cards, err := NewCardService(dbCtx).List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	got := map[string]string{}
	for _, card := range cards {
		got[card.Number] = card.Rarity.Name
	}
	want := map[string]string{"MRD-001": "Common", "MRD-002": "Ultra Rare", "MRD-003": UnknownRarity}
	for number, rarity := range want {
		if got[number] != rarity {
			t.Fatalf("card %s rarity = %q, expected %q", number, got[number], rarity)
		}
	}

	rarities, err := NewRarityService(dbCtx).List(ctx)
	if err != nil {
		t.Fatalf("rarity List failed: %v", err)
	}
	for _, rarity := range rarities {
		if rarity.Name == "Short Print" || rarity.Name == "Ultra Rare\nfoil" {
			t.Fatalf("raw rarity %q was stored", rarity.Name)
		}
	}
}

func TestCardServiceAdjust(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	seedLOB(t, dbCtx)
	svc := NewCardService(dbCtx)

	count, err := svc.Adjust(ctx, "LOB-001", nil)
	if err != nil || count != 1 {
		t.Fatalf("Adjust(nil) = %d, %v", count, err)
	}

	two := 2
	count, err = svc.Adjust(ctx, "LOB-001", &two)
	if err != nil || count != 3 {
		t.Fatalf("Adjust(+2) = %d, %v", count, err)
	}

	minusFour := -4
	if _, err := svc.Adjust(ctx, "LOB-001", &minusFour); !errors.Is(err, ErrNegativeCount) {
		t.Fatalf("expected ErrNegativeCount, got %v", err)
	}

	card, err := svc.Get(ctx, "LOB-001")
	if err != nil || card.InCollection != 3 {
		t.Fatalf("refused delta must leave count untouched: %#v %v", card, err)
	}

	if _, err := svc.Adjust(ctx, "LOB-404", nil); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}

	total, err := svc.TotalOwned(ctx)
	if err != nil || total != 3 {
		t.Fatalf("TotalOwned = %d, %v", total, err)
	}
}

func TestCardServiceSearchAndSetCount(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	seedLOB(t, dbCtx)
	svc := NewCardService(dbCtx)

	if _, err := svc.Search(ctx, "  "); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}

	found, err := svc.Search(ctx, "dark")
	if err != nil || len(found) != 1 || found[0].Number != "LOB-003" {
		t.Fatalf("Search = %#v, %v", found, err)
	}

	if err := svc.SetCount(ctx, "LOB-002", 4); err != nil {
		t.Fatalf("SetCount failed: %v", err)
	}
	if err := svc.SetCount(ctx, "LOB-404", 1); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
	if err := svc.SetCount(ctx, "LOB-002", -1); !errors.Is(err, ErrNegativeCount) {
		t.Fatalf("expected ErrNegativeCount, got %v", err)
	}

	card, err := svc.Get(ctx, "LOB-002")
	if err != nil || card.InCollection != 4 {
		t.Fatalf("Get = %#v, %v", card, err)
	}

	if _, err := svc.ResetCollection(ctx); err != nil {
		t.Fatalf("ResetCollection failed: %v", err)
	}
	total, err := svc.TotalOwned(ctx)
	if err != nil || total != 0 {
		t.Fatalf("TotalOwned after reset = %d, %v", total, err)
	}
}

func TestSeriesAndRarityServices(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	seedLOB(t, dbCtx)

	series, err := NewSeriesService(dbCtx).FindByName(ctx, "Legend of Blue Eyes White Dragon")
	if err != nil || series.ReleaseDate != "2002-03-08" || series.CardCount != 3 {
		t.Fatalf("FindByName = %#v, %v", series, err)
	}
	if _, err := NewSeriesService(dbCtx).FindByName(ctx, "Nope"); !errors.Is(err, ErrSeriesNotFound) {
		t.Fatalf("expected ErrSeriesNotFound, got %v", err)
	}

	rarities := NewRarityService(dbCtx)
	id, err := rarities.Add(ctx, "Starlight Rare")
	if err != nil || id == 0 {
		t.Fatalf("Add = %d, %v", id, err)
	}
	if _, err := rarities.Add(ctx, " "); err == nil {
		t.Fatalf("expected empty rarity name to fail")
	}
	for _, name := range []string{"Short Print", "Ultra Rare\nfoil"} {
		if _, err := rarities.Add(ctx, name); !errors.Is(err, ErrNonCanonicalRarity) {
			t.Fatalf("Add(%q) = %v, expected ErrNonCanonicalRarity", name, err)
		}
	}
	list, err := rarities.List(ctx)
	if err != nil || list[len(list)-1].Name != "Starlight Rare" {
		t.Fatalf("List = %#v, %v", list, err)
	}
}

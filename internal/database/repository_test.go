package database

import (
	"context"
	"testing"

	"github.com/cardcol/cardcol/internal/catalog"
)

var catalogNormalMonster = catalog.CardType{Main: catalog.MainMonster}

func TestSeriesRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	dbCtx := setupTestDB(t)
	repo := NewSeriesRepository(dbCtx)

	id, err := repo.GetOrCreate(ctx, "Metal Raiders", "", "2002-06-26")
	if err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected non-zero series id")
	}

	sameID, err := repo.GetOrCreate(ctx, "Metal Raiders", "MRD", "1970-01-01")
	if err != nil {
		t.Fatalf("GetOrCreate second call error: %v", err)
	}
	if sameID != id {
		t.Fatalf("expected id %d, got %d", id, sameID)
	}

	fetched, err := repo.FindByID(ctx, id)
	if err != nil || fetched == nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if fetched.Prefix != "MRD" {
		t.Fatalf("expected prefix to be filled in, got %q", fetched.Prefix)
	}
	if fetched.ReleaseDate != "2002-06-26" {
		t.Fatalf("release date must not be overwritten, got %q", fetched.ReleaseDate)
	}

	missing, err := repo.FindByName(ctx, "Pharaoh's Servant")
	if err != nil {
		t.Fatalf("FindByName error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown series, got %#v", missing)
	}
}

func TestSeriesCardCountIsDerived(t *testing.T) {
	ctx := context.Background()
	dbCtx := setupTestDB(t)

	lob := insertSeries(t, dbCtx, "Legend of Blue Eyes White Dragon")
	insertCard(t, dbCtx, lob, "LOB-001", "Blue-Eyes White Dragon")
	insertCard(t, dbCtx, lob, "LOB-002", "Mystical Elf")

	if _, err := NewSeriesRepository(dbCtx).GetOrCreate(ctx, "Metal Raiders", "MRD", "2002-06-26"); err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}

	all, err := NewSeriesRepository(dbCtx).FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 series, got %d", len(all))
	}
	if all[0].Name != "Legend of Blue Eyes White Dragon" || all[0].CardCount != 2 {
		t.Fatalf("unexpected first series %#v", all[0])
	}
	if all[1].CardCount != 0 {
		t.Fatalf("expected empty series to count 0, got %d", all[1].CardCount)
	}

	byName, err := NewSeriesRepository(dbCtx).FindByName(ctx, "Legend of Blue Eyes White Dragon")
	if err != nil || byName == nil {
		t.Fatalf("FindByName failed: %v", err)
	}
	if byName.CardCount != 2 {
		t.Fatalf("expected FindByName to count 2 cards, got %d", byName.CardCount)
	}

	byID, err := NewSeriesRepository(dbCtx).FindByID(ctx, lob)
	if err != nil || byID == nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if byID.CardCount != 2 {
		t.Fatalf("expected FindByID to count 2 cards, got %d", byID.CardCount)
	}

	empty, err := NewSeriesRepository(dbCtx).FindByName(ctx, "Metal Raiders")
	if err != nil || empty == nil {
		t.Fatalf("FindByName failed: %v", err)
	}
	if empty.CardCount != 0 {
		t.Fatalf("expected empty series to count 0, got %d", empty.CardCount)
	}
}

func TestCardRepositoryQueries(t *testing.T) {
	ctx := context.Background()
	dbCtx := setupTestDB(t)
	repo := NewCardRepository(dbCtx)

	seriesID := insertSeries(t, dbCtx, "Legend of Blue Eyes White Dragon")
	insertCard(t, dbCtx, seriesID, "LOB-001", "Blue-Eyes White Dragon")
	insertCard(t, dbCtx, seriesID, "LOB-002", "Mystical Elf")

	inserted, err := repo.Insert(ctx, NewCard{Number: "LOB-001", Name: "dup", SeriesID: seriesID, RarityID: 1, CardTypeID: 1})
	if err != nil {
		t.Fatalf("duplicate insert error: %v", err)
	}
	if inserted {
		t.Fatalf("expected duplicate number to be skipped")
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(all) != 2 || all[0].Number != "LOB-001" || all[0].RarityName != "Ultra Rare" {
		t.Fatalf("unexpected cards %#v", all)
	}
	if all[0].MainType != catalog.MainMonster {
		t.Fatalf("expected joined card type, got %q", all[0].MainType)
	}

	found, err := repo.SearchByName(ctx, "ELF")
	if err != nil {
		t.Fatalf("SearchByName error: %v", err)
	}
	if len(found) != 1 || found[0].Number != "LOB-002" {
		t.Fatalf("expected case-insensitive match, got %#v", found)
	}

	bySeries, err := repo.ListBySeries(ctx, seriesID)
	if err != nil || len(bySeries) != 2 {
		t.Fatalf("ListBySeries failed: %d %v", len(bySeries), err)
	}

	missing, err := repo.FindByNumber(ctx, "LOB-999")
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for unknown card, got %#v %v", missing, err)
	}
}

func TestCardRepositoryApplyDelta(t *testing.T) {
	ctx := context.Background()
	dbCtx := setupTestDB(t)
	repo := NewCardRepository(dbCtx)

	seriesID := insertSeries(t, dbCtx, "Legend of Blue Eyes White Dragon")
	insertCard(t, dbCtx, seriesID, "LOB-001", "Blue-Eyes White Dragon")

	count, ok, err := repo.ApplyDelta(ctx, "LOB-001", 1)
	if err != nil || !ok || count != 1 {
		t.Fatalf("ApplyDelta +1: count=%d ok=%v err=%v", count, ok, err)
	}
	count, ok, err = repo.ApplyDelta(ctx, "LOB-001", 2)
	if err != nil || !ok || count != 3 {
		t.Fatalf("ApplyDelta +2: count=%d ok=%v err=%v", count, ok, err)
	}

	_, ok, err = repo.ApplyDelta(ctx, "LOB-001", -4)
	if err != nil {
		t.Fatalf("ApplyDelta -4 error: %v", err)
	}
	if ok {
		t.Fatalf("expected delta below zero to be refused")
	}

	_, ok, err = repo.ApplyDelta(ctx, "LOB-404", 1)
	if err != nil || ok {
		t.Fatalf("expected unknown card to report ok=false, got ok=%v err=%v", ok, err)
	}

	total, err := repo.TotalOwned(ctx)
	if err != nil || total != 3 {
		t.Fatalf("TotalOwned: %d %v", total, err)
	}

	if err := repo.SetCount(ctx, "LOB-001", 0); err != nil {
		t.Fatalf("SetCount error: %v", err)
	}
	if err := repo.SetCount(ctx, "LOB-404", 1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReferenceRepositoriesGetOrCreate(t *testing.T) {
	ctx := context.Background()
	dbCtx := setupTestDB(t)

	rarities := NewRarityRepository(dbCtx)
	common, err := rarities.GetOrCreate(ctx, "Common")
	if err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}
	if common != 1 {
		t.Fatalf("expected seeded Common to have id 1, got %d", common)
	}
	ghost, err := rarities.GetOrCreate(ctx, "Ghost Rare")
	if err != nil || ghost <= common {
		t.Fatalf("expected new rarity id, got %d %v", ghost, err)
	}

	types := NewCardTypeRepository(dbCtx)
	first, err := types.GetOrCreate(ctx, catalog.CardType{Main: "Spell Card", Sub: "Field"})
	if err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}
	again, err := types.GetOrCreate(ctx, catalog.CardType{Main: "Spell Card", Sub: "Field"})
	if err != nil || again != first {
		t.Fatalf("expected same card type id, got %d %v", again, err)
	}
	other, err := types.GetOrCreate(ctx, catalog.CardType{Main: "Spell Card"})
	if err != nil || other == first {
		t.Fatalf("expected distinct id for a different sub type, got %d %v", other, err)
	}
}

func TestCardRecordToCatalogCard(t *testing.T) {
	record := CardRecord{
		Number:     "LOB-001",
		Name:       "Blue-Eyes White Dragon",
		RarityID:   4,
		RarityName: "Ultra Rare",
		MainType:   catalog.MainMonster,
	}
	card := record.ToCatalogCard()
	if card.Rarity.Name != "Ultra Rare" || card.CardTypeDisplay != "Monster" {
		t.Fatalf("unexpected card %#v", card)
	}
	if card.Style == (catalog.Style{}) {
		t.Fatalf("expected style to be filled")
	}
}

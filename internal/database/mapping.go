package database

import (
	"github.com/cardcol/cardcol/internal/catalog"
	sqldb "github.com/cardcol/cardcol/internal/database/sqlc"
)

// CardRecordFromRow converts a joined card row into a CardRecord.
func CardRecordFromRow(row sqldb.CardRow) CardRecord {
	return CardRecord{
		Number:           row.Number,
		Name:             row.Name,
		CollectionNumber: int(row.CollectionNumber),
		InCollection:     int(row.InCollection),
		SeriesID:         row.SeriesID,
		RarityID:         row.RarityID,
		RarityName:       row.RarityName,
		MainType:         row.MainType,
		SubType:          row.SubType,
	}
}

// SeriesRecordFromCountRow converts a series row carrying its card count.
func SeriesRecordFromCountRow(row sqldb.ListSeriesWithCountsRow) SeriesRecord {
	return SeriesRecord{
		ID:          row.ID,
		Name:        row.Name,
		Prefix:      optionalString(row.Prefix),
		ReleaseDate: row.ReleaseDate,
		CardCount:   int(row.CardCount),
	}
}

// ToCatalogCard converts a record into the wire shape, with display fields filled.
func (r CardRecord) ToCatalogCard() catalog.Card {
	return catalog.Decorate(catalog.Card{
		Number:           r.Number,
		Name:             r.Name,
		CollectionNumber: r.CollectionNumber,
		InCollection:     r.InCollection,
		SeriesID:         r.SeriesID,
		Rarity:           catalog.Rarity{ID: r.RarityID, Name: r.RarityName},
		CardType:         catalog.CardType{Main: r.MainType, Sub: r.SubType},
	})
}

// ToCatalogSeries converts a record into the wire shape.
func (r SeriesRecord) ToCatalogSeries() catalog.Series {
	return catalog.Series{
		ID:          r.ID,
		Name:        r.Name,
		Prefix:      r.Prefix,
		ReleaseDate: r.ReleaseDate,
		CardCount:   r.CardCount,
	}
}

func mapCardRows(rows []sqldb.CardRow) []CardRecord {
	result := make([]CardRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, CardRecordFromRow(row))
	}
	return result
}

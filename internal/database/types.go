package database

// CardRecord is a card row joined with its rarity and card type.
type CardRecord struct {
	Number           string
	Name             string
	CollectionNumber int
	InCollection     int
	SeriesID         int64
	RarityID         int64
	RarityName       string
	MainType         string
	SubType          string
}

// SeriesRecord mirrors the series table plus the derived card count.
type SeriesRecord struct {
	ID          int64
	Name        string
	Prefix      string
	ReleaseDate string
	CardCount   int
}

// RarityRecord is a row of the rarities table.
type RarityRecord struct {
	ID   int64
	Name string
}

// NewCard carries what is needed to insert a card.
type NewCard struct {
	Number           string
	Name             string
	CollectionNumber int
	SeriesID         int64
	RarityID         int64
	CardTypeID       int64
}

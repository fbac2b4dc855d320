package sqldb

import "database/sql"

type Rarity struct {
	ID   int64
	Name string
}

type CardType struct {
	ID       int64
	MainType string
	SubType  string
}

type Series struct {
	ID          int64
	Name        string
	Prefix      sql.NullString
	ReleaseDate string
}

type Card struct {
	Number           string
	Name             string
	CollectionNumber int64
	InCollection     int64
	SeriesID         int64
	RarityID         int64
	CardTypeID       int64
}

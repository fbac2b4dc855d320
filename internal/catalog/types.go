// Package catalog defines the canonical card and series model shared by the store,
// the HTTP API and the client side view model.
package catalog

// Rarity is a named rarity tier.
type Rarity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Card is a single printed card in a series. Number is the unique key.
type Card struct {
	Number           string   `json:"number"`
	Name             string   `json:"name"`
	CollectionNumber int      `json:"collection_number"`
	InCollection     int      `json:"in_collection"`
	SeriesID         int64    `json:"series_id"`
	Rarity           Rarity   `json:"rarity"`
	CardType         CardType `json:"card_type"`
	CardTypeDisplay  string   `json:"card_type_display"`
	Style            Style    `json:"style"`
}

// Collected reports whether at least one copy is owned.
func (c Card) Collected() bool {
	return c.InCollection > 0
}

// Series is a set release. CardCount is derived from the cards stored for it.
type Series struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Prefix      string `json:"prefix,omitempty"`
	ReleaseDate string `json:"release_date"`
	CardCount   int    `json:"card_count"`
}

// Decorate fills the derived display fields of a card from its card type.
func Decorate(card Card) Card {
	card.CardTypeDisplay = card.CardType.Display()
	card.Style = DisplayStyle(card.CardType)
	return card
}

// ContractVersion identifies the wire shape of Card and Series.
const ContractVersion = "v1"

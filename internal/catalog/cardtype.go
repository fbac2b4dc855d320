package catalog

import "strings"

const (
	MainMonster = "Monster"
	MainSpell   = "Spell Card"
	MainTrap    = "Trap Card"
)

// extra deck and ritual monsters keep their frame in the main type.
var framedMonsters = map[string]bool{
	"Fusion":  true,
	"Ritual":  true,
	"Synchro": true,
	"Xyz":     true,
	"Link":    true,
}

// CardType splits a category into a main kind and an optional sub kind.
type CardType struct {
	Main string `json:"main"`
	Sub  string `json:"sub"`
}

// Display renders the type as "sub main", or just main when there is no sub kind.
func (t CardType) Display() string {
	return strings.TrimSpace(t.Sub + " " + t.Main)
}

// ParseCategory maps a raw category label such as "Quick-Play Spell Card" or
// "Flip Effect Monster" onto a CardType. Unknown labels become the main type as-is.
func ParseCategory(category string) CardType {
	text := strings.Join(strings.Fields(category), " ")
	if text == "" {
		return CardType{}
	}

	for _, main := range []string{MainSpell, MainTrap} {
		if text == main {
			return CardType{Main: main}
		}
		if sub, ok := strings.CutSuffix(text, " "+main); ok {
			return CardType{Main: main, Sub: sub}
		}
	}

	if text == MainMonster {
		return CardType{Main: MainMonster}
	}
	rest, ok := strings.CutSuffix(text, " "+MainMonster)
	if !ok {
		return CardType{Main: text}
	}

	words := strings.Fields(rest)
	last := words[len(words)-1]
	if framedMonsters[last] {
		return CardType{
			Main: last + " " + MainMonster,
			Sub:  strings.Join(words[:len(words)-1], " "),
		}
	}
	if words[0] == "Normal" && len(words) == 1 {
		return CardType{Main: MainMonster}
	}
	return CardType{Main: MainMonster, Sub: words[0]}
}

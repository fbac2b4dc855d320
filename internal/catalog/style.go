package catalog

// Style is the colour pair a presentation layer uses for a card row.
type Style struct {
	Foreground string `json:"foreground"`
	Background string `json:"background"`
}

const (
	colorBlack  = "#000000"
	colorWhite  = "#FFFFFF"
	colorEffect = "#FF8B53"
	colorNormal = "#FDE68A"
	colorTrap   = "#BC5A84"
	colorSpell  = "#1d9e74"
	colorFusion = "#A086B7"
	colorRitual = "#9db5cc"
)

// DefaultStyle is used for card types without an entry in the style table.
var DefaultStyle = Style{Foreground: colorBlack, Background: colorWhite}

type styleKey struct {
	main string
	sub  string
}

// anySub matches every sub type of a main type.
const anySub = "*"

var styleTable = map[styleKey]Style{
	{MainMonster, ""}:          {Foreground: colorBlack, Background: colorNormal},
	{MainMonster, "Effect"}:    {Foreground: colorBlack, Background: colorEffect},
	{MainMonster, "Flip"}:      {Foreground: colorBlack, Background: colorEffect},
	{MainMonster, "Toon"}:      {Foreground: colorBlack, Background: colorEffect},
	{MainMonster, anySub}:      {Foreground: colorBlack, Background: colorNormal},
	{MainSpell, anySub}:        {Foreground: colorWhite, Background: colorSpell},
	{MainTrap, anySub}:         {Foreground: colorWhite, Background: colorTrap},
	{"Fusion Monster", anySub}: {Foreground: colorBlack, Background: colorFusion},
	{"Ritual Monster", anySub}: {Foreground: colorBlack, Background: colorRitual},
}

// DisplayStyle looks up the style for a card type: exact (main, sub) first,
// then the main type wildcard, then DefaultStyle.
func DisplayStyle(t CardType) Style {
	if style, ok := styleTable[styleKey{t.Main, t.Sub}]; ok {
		return style
	}
	if style, ok := styleTable[styleKey{t.Main, anySub}]; ok {
		return style
	}
	return DefaultStyle
}

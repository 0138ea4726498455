package engine

import "fmt"

// Color is the color of a card. ColorNone is only carried by a wild card
// whose color has not been chosen yet.
type Color uint8

const (
	ColorNone Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
)

// Colors lists the four real colors in deck enumeration order.
var Colors = [4]Color{ColorRed, ColorGreen, ColorBlue, ColorYellow}

// IsReal reports whether c is one of the four playable colors.
func (c Color) IsReal() bool { return c >= ColorRed && c <= ColorYellow }

func (c Color) String() string {
	switch c {
	case ColorNone:
		return "NONE"
	case ColorRed:
		return "RED"
	case ColorGreen:
		return "GREEN"
	case ColorBlue:
		return "BLUE"
	case ColorYellow:
		return "YELLOW"
	default:
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
}

// ParseColor converts a color name as produced by Color.String.
func ParseColor(s string) (Color, error) {
	switch s {
	case "RED", "red":
		return ColorRed, nil
	case "GREEN", "green":
		return ColorGreen, nil
	case "BLUE", "blue":
		return ColorBlue, nil
	case "YELLOW", "yellow":
		return ColorYellow, nil
	case "", "NONE", "none":
		return ColorNone, nil
	}
	return ColorNone, fmt.Errorf("unknown color %q", s)
}

// CardType is the closed set of card kinds.
type CardType uint8

const (
	Numbered CardType = iota
	Skip
	Reverse
	DrawTwo
	Wild
	WildDraw
)

func (t CardType) String() string {
	switch t {
	case Numbered:
		return "NUMBERED"
	case Skip:
		return "SKIP"
	case Reverse:
		return "REVERSE"
	case DrawTwo:
		return "DRAW_TWO"
	case Wild:
		return "WILD"
	case WildDraw:
		return "WILD_DRAW"
	default:
		return fmt.Sprintf("CardType(%d)", uint8(t))
	}
}

// Card is an immutable card value. Number is meaningful only for Numbered
// cards. Cards are comparable with ==.
type Card struct {
	Type   CardType
	Color  Color
	Number uint8
}

// NumberedCard returns a numbered card; n must be in [0, 9].
func NumberedCard(c Color, n uint8) Card { return Card{Type: Numbered, Color: c, Number: n} }

func SkipCard(c Color) Card    { return Card{Type: Skip, Color: c} }
func ReverseCard(c Color) Card { return Card{Type: Reverse, Color: c} }
func DrawTwoCard(c Color) Card { return Card{Type: DrawTwo, Color: c} }
func WildCard() Card           { return Card{Type: Wild} }
func WildDrawCard() Card       { return Card{Type: WildDraw} }

// IsWild reports whether the card is a WILD or WILD_DRAW.
func (c Card) IsWild() bool { return c.Type == Wild || c.Type == WildDraw }

// WithColor returns a copy of c carrying color col.
func (c Card) WithColor(col Color) Card {
	c.Color = col
	return c
}

// Points returns the scoring value of the card when left in a losing hand.
func (c Card) Points() int {
	switch c.Type {
	case Numbered:
		return int(c.Number)
	case Skip, Reverse, DrawTwo:
		return 20
	case Wild, WildDraw:
		return 50
	}
	return 0
}

func (c Card) String() string {
	switch c.Type {
	case Numbered:
		return fmt.Sprintf("%s-%d", c.Color, c.Number)
	case Wild, WildDraw:
		if c.Color == ColorNone {
			return c.Type.String()
		}
		return fmt.Sprintf("%s(%s)", c.Type, c.Color)
	default:
		return fmt.Sprintf("%s-%s", c.Color, c.Type)
	}
}

// NoPlayer is returned by player-index queries that have no answer,
// such as PlayerInTurn on an ended hand.
const NoPlayer = -1

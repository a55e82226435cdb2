// Package display renders positions as text boards, optionally with ANSI
// square colours.
package display

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Terminal color codes
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// Theme names a square palette.
type Theme string

const (
	ThemeBrown Theme = "brown"
	ThemeGreen Theme = "green"
	ThemeGray  Theme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	markBg  string // highlighted squares
	white   string
	black   string
}

var themes = map[Theme]themeColors{
	ThemeBrown: {
		lightBg: "\033[48;5;230m", // Beige
		darkBg:  "\033[48;5;94m",  // Brown
		markBg:  "\033[48;5;178m",
		white:   "\033[97m",
		black:   "\033[30m",
	},
	ThemeGreen: {
		lightBg: "\033[48;5;157m", // Light green
		darkBg:  "\033[48;5;22m",  // Dark green
		markBg:  "\033[48;5;220m",
		white:   "\033[97m",
		black:   "\033[30m",
	},
	ThemeGray: {
		lightBg: "\033[48;5;251m", // Light gray
		darkBg:  "\033[48;5;240m", // Dark gray
		markBg:  "\033[48;5;143m",
		white:   "\033[97m",
		black:   "\033[30m",
	},
}

// Themes lists the known theme names, sorted.
func Themes() []string {
	names := make([]string, 0, len(themes))
	for t := range themes {
		names = append(names, string(t))
	}
	sort.Strings(names)
	return names
}

// Options controls RenderBoard.
type Options struct {
	// Colour enables ANSI square and piece colours.
	Colour bool
	Theme  Theme

	// Coordinates frames the board with file letters and rank numbers.
	Coordinates bool

	// Highlight marks squares, typically a piece's legal destinations.
	// Without colour, empty marked squares print as '*'.
	Highlight chess.SquareSet
}

// RenderBoard writes pos with rank 8 at the top.
func RenderBoard(w io.Writer, pos *chess.Position, opts Options) error {
	colours, ok := themes[opts.Theme]
	if !ok {
		colours = themes[ThemeBrown]
	}

	var sb strings.Builder
	if opts.Coordinates {
		sb.WriteString("  a b c d e f g h\n")
	}
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		if opts.Coordinates {
			fmt.Fprintf(&sb, "%d ", rank+1)
		}
		for file := 0; file < chess.BoardSize; file++ {
			sq := chess.Square(rank*chess.BoardSize + file)
			marked := opts.Highlight.Has(sq)

			glyph := byte('.')
			var piece *chess.Piece
			if id := pos.PieceAt(sq); id != chess.NoPiece {
				piece = pos.Piece(id)
				glyph = piece.Letter()
			} else if marked && !opts.Colour {
				glyph = '*'
			}

			if !opts.Colour {
				sb.WriteByte(glyph)
				if file < chess.BoardSize-1 {
					sb.WriteByte(' ')
				}
				continue
			}

			bg := colours.darkBg
			if (rank+file)%2 == 1 {
				bg = colours.lightBg
			}
			if marked {
				bg = colours.markBg
			}
			if piece == nil {
				sb.WriteString(bg + "  " + Reset)
				continue
			}
			fg := colours.black
			if piece.Colour == chess.White {
				fg = colours.white
			}
			fmt.Fprintf(&sb, "%s%s%c %s", bg, fg, glyph, Reset)
		}
		if opts.Coordinates {
			fmt.Fprintf(&sb, " %d", rank+1)
		}
		sb.WriteByte('\n')
	}
	if opts.Coordinates {
		sb.WriteString("  a b c d e f g h\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// UseColour resolves a colour mode ("auto", "always", "never") for w.
// Auto enables colour only when w is a terminal.
func UseColour(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ColourForTurn returns a turn label, coloured when colour is set.
func ColourForTurn(c chess.Colour, colour bool) string {
	if !colour {
		return c.String()
	}
	if c == chess.White {
		return Blue + c.String() + Reset
	}
	return Red + c.String() + Reset
}

// Prompt returns the REPL prompt.
func Prompt(text string, colour bool) string {
	if !colour {
		return text + " > "
	}
	return Yellow + text + " > " + Reset
}

package config

import (
	"io"
	"os"
)

// Colour modes for board rendering.
const (
	ColourAuto   = "auto"
	ColourAlways = "always"
	ColourNever  = "never"
)

// OutputConfig holds settings related to board and result output.
type OutputConfig struct {
	// ColourMode is "auto" (ANSI only on a terminal), "always" or "never".
	ColourMode string `validate:"oneof=auto always never"`

	// Theme names the ANSI square palette.
	Theme string `validate:"oneof=brown green gray"`

	// Coordinates prints file letters and rank numbers around the board.
	Coordinates bool

	// OutputFile receives boards and command results.
	OutputFile io.Writer `validate:"-"`
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		ColourMode:  ColourAuto,
		Theme:       "brown",
		Coordinates: true,
		OutputFile:  os.Stdout,
	}
}

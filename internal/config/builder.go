package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config. It is not validated; call Validate.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithStartFEN sets the position new sessions start from.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.StartFEN = fen
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

// WithPerft sets the non-interactive perft depth and divide mode.
func (b *ConfigBuilder) WithPerft(depth int, divide bool) *ConfigBuilder {
	b.cfg.Perft.Depth = depth
	b.cfg.Perft.Divide = divide
	return b
}

// WithWorkers sets the number of divide workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Perft.Workers = n
	return b
}

// WithSnapshotBackend selects the snapshot store.
func (b *ConfigBuilder) WithSnapshotBackend(backend string) *ConfigBuilder {
	b.cfg.Snapshot.Backend = backend
	return b
}

// WithHistoryFile sets the REPL history file.
func (b *ConfigBuilder) WithHistoryFile(path string) *ConfigBuilder {
	b.cfg.Snapshot.HistoryFile = path
	return b
}

// WithColourMode sets when ANSI colours are used.
func (b *ConfigBuilder) WithColourMode(mode string) *ConfigBuilder {
	b.cfg.Output.ColourMode = mode
	return b
}

// WithTheme sets the board palette.
func (b *ConfigBuilder) WithTheme(theme string) *ConfigBuilder {
	b.cfg.Output.Theme = theme
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.Output.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

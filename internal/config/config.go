// Package config provides configuration for the chessrules tools.
package config

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Verbosity levels accepted by Logf.
const (
	Quiet   = 0 // errors only
	Normal  = 1 // command results
	Verbose = 2 // running commentary (moves, snapshots)
	Debug   = 3 // internal state dumps
)

// Config holds all program configuration.
type Config struct {
	// StartFEN is the position a new session starts from.
	StartFEN string `validate:"required,fen"`

	// Verbosity gates Logf output: 0=errors, 1=results, 2=commentary, 3=debug.
	Verbosity int `validate:"gte=0,lte=3"`

	Perft    PerftConfig
	Snapshot SnapshotConfig
	Output   OutputConfig

	// Log stream
	LogFile io.Writer `validate:"-"`

	mu sync.Mutex
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		StartFEN:  engine.InitialFEN,
		Verbosity: Normal,
		Perft:     *NewPerftConfig(),
		Snapshot:  *NewSnapshotConfig(),
		Output:    *NewOutputConfig(),
		LogFile:   os.Stderr,
	}
}

// SetOutput sets the stream boards and command results are written to.
func (c *Config) SetOutput(w io.Writer) {
	c.Output.OutputFile = w
}

// SetLog sets the log stream.
func (c *Config) SetLog(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LogFile = w
}

// Logf writes a log line when the configured verbosity is at least level.
// It satisfies game.Logger.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if level > c.Verbosity {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.LogFile == nil {
		return
	}
	fmt.Fprintf(c.LogFile, format, args...)
	if !strings.HasSuffix(format, "\n") {
		fmt.Fprintln(c.LogFile)
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("fen", func(fl validator.FieldLevel) bool {
		_, err := engine.NewPositionFromFEN(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks every field against its constraints. The returned error
// wraps ErrInvalidConfig and lists each failing field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrInvalidConfig, err.Error())
	}

	var details strings.Builder
	for _, fe := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		details.WriteString(describe(fe))
	}
	return fmt.Errorf("%s: %w", details.String(), errors.ErrInvalidConfig)
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "fen":
		return fmt.Sprintf("%s is not a valid FEN: %q", field, fe.Value())
	case "gte", "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s, got %v", field, fe.Param(), fe.Value())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s, got %v", field, fe.Param(), fe.Value())
	}
	return fmt.Sprintf("%s failed %q", field, fe.Tag())
}

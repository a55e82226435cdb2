package game

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// MoveRequest is a move as a caller types it.
type MoveRequest struct {
	From      string `validate:"required,square"`
	To        string `validate:"required,square"`
	Promotion string `validate:"omitempty,oneof=q r b n"`
}

// ParseMoveRequest splits coordinate notation ("e2e4", "e7e8q") into a
// request. The result is validated by AttemptMove.
func ParseMoveRequest(text string) MoveRequest {
	text = strings.TrimSpace(text)
	var req MoveRequest
	if len(text) >= 2 {
		req.From = text[:2]
	}
	if len(text) >= 4 {
		req.To = text[2:4]
	}
	if len(text) > 4 {
		req.Promotion = strings.ToLower(text[4:])
	}
	return req
}

func (r MoveRequest) String() string {
	return r.From + r.To + r.Promotion
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("square", func(fl validator.FieldLevel) bool {
		_, err := chess.ParseSquare(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// parse validates the request and converts it to engine types.
func (r MoveRequest) parse() (from, to chess.Square, promo chess.Kind, err error) {
	if verr := validate.Struct(r); verr != nil {
		verrs, ok := verr.(validator.ValidationErrors)
		if !ok || len(verrs) == 0 {
			return chess.NoSquare, chess.NoSquare, chess.NoKind, &errors.MoveError{Err: verr, MoveText: r.String()}
		}
		fe := verrs[0]
		sentinel := errors.ErrIllegalMove
		if fe.Tag() == "square" || fe.Tag() == "required" {
			sentinel = errors.ErrOutOfBounds
		}
		return chess.NoSquare, chess.NoSquare, chess.NoKind, &errors.MoveError{
			Err:      fmt.Errorf("%s %q fails %s: %w", fe.Field(), fe.Value(), fe.Tag(), sentinel),
			MoveText: r.String(),
		}
	}

	from = chess.MustSquare(r.From)
	to = chess.MustSquare(r.To)
	if r.Promotion != "" {
		_, promo, _ = chess.KindFromLetter(r.Promotion[0])
	}
	return from, to, promo, nil
}

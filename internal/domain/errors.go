package domain

import "errors"

// Sentinel errors used across layers.
//
// The Unknown* errors are configuration mistakes (bad ids) and always
// propagate to the caller. Bad numeric input never produces an error; it is
// reported through the Warnings of the computed result instead.
var (
	ErrNotFound              = errors.New("not found")
	ErrUnknownRecipe         = errors.New("unknown recipe")
	ErrUnsupportedRecipeKind = errors.New("unsupported recipe kind")
	ErrUnknownStill          = errors.New("unknown still")
	ErrUnknownTank           = errors.New("unknown tank")
	ErrUnknownProduct        = errors.New("unknown product")
	ErrScenarioDiverged      = errors.New("scenario output diverged from recomputation")
)

package fixture

import (
	"fixture-generator/internal/engine"
	"fixture-generator/selector"
	"fixture-generator/typesig"
)

type (
	UnresolvedTypeError      = typesig.UnresolvedTypeError
	InstantiationError       = engine.InstantiationError
	AssignmentError          = engine.AssignmentError
	MaxAttemptsExceededError = engine.MaxAttemptsExceededError
	UnusedSelectorError      = selector.UnusedSelectorError
	SelectorError            = selector.SelectorError
)

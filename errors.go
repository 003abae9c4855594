package gearbox

import "github.com/comalice/gearbox/internal/primitives"

// Validation rules, in the order New checks them.
const (
	RuleFirstGearLow         = primitives.RuleFirstGearLow
	RulePositiveBounds       = primitives.RulePositiveBounds
	RuleLowNotAboveHigh      = primitives.RuleLowNotAboveHigh
	RuleIncreasingLows       = primitives.RuleIncreasingLows
	RuleIncreasingHighs      = primitives.RuleIncreasingHighs
	RuleCoverage             = primitives.RuleCoverage
	RuleAdjacentOverlap      = primitives.RuleAdjacentOverlap
	RuleNonAdjacentExclusive = primitives.RuleNonAdjacentExclusive
)

// Sentinels matched by errors.Is against a *ValidationError from New.
var (
	ErrFirstGearLow         = primitives.ErrFirstGearLow
	ErrPositiveBounds       = primitives.ErrPositiveBounds
	ErrLowNotAboveHigh      = primitives.ErrLowNotAboveHigh
	ErrIncreasingLows       = primitives.ErrIncreasingLows
	ErrIncreasingHighs      = primitives.ErrIncreasingHighs
	ErrCoverage             = primitives.ErrCoverage
	ErrAdjacentOverlap      = primitives.ErrAdjacentOverlap
	ErrNonAdjacentExclusive = primitives.ErrNonAdjacentExclusive
)

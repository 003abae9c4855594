package primitives

import (
	"errors"
	"fmt"
)

// Rule identifies one table invariant. Rules are checked in ascending order
// and the first violated rule is reported.
type Rule int

const (
	RuleFirstGearLow Rule = iota + 1
	RulePositiveBounds
	RuleLowNotAboveHigh
	RuleIncreasingLows
	RuleIncreasingHighs
	RuleCoverage
	RuleAdjacentOverlap
	RuleNonAdjacentExclusive
)

var ruleNames = map[Rule]string{
	RuleFirstGearLow:         "first-gear-low",
	RulePositiveBounds:       "positive-bounds",
	RuleLowNotAboveHigh:      "low-not-above-high",
	RuleIncreasingLows:       "increasing-lows",
	RuleIncreasingHighs:      "increasing-highs",
	RuleCoverage:             "coverage",
	RuleAdjacentOverlap:      "adjacent-overlap",
	RuleNonAdjacentExclusive: "non-adjacent-exclusive",
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("rule(%d)", int(r))
}

// Sentinel errors, one per rule. The message of each is the exact text
// reported to callers.
var (
	ErrFirstGearLow         = errors.New("First gear's lowest speed ought to be 0.")
	ErrPositiveBounds       = errors.New("One or more of the given speed values are negative or zero.")
	ErrLowNotAboveHigh      = errors.New("Lower speed should be less than or equal to that gear's higher speed.")
	ErrIncreasingLows       = errors.New("Any gear's lower speed should be strictly less than the next gear's lower speed.")
	ErrIncreasingHighs      = errors.New("Any gear's higher speed should be strictly less than the next gear's higher speed.")
	ErrCoverage             = errors.New("The given speeds do not cover the maximumSpeedLimit range.")
	ErrAdjacentOverlap      = errors.New("Given ranges shouldn't be non-overlapping.")
	ErrNonAdjacentExclusive = errors.New("Only adjacent-gear ranges may overlap; other ranges should not.")
)

var ruleErrors = map[Rule]error{
	RuleFirstGearLow:         ErrFirstGearLow,
	RulePositiveBounds:       ErrPositiveBounds,
	RuleLowNotAboveHigh:      ErrLowNotAboveHigh,
	RuleIncreasingLows:       ErrIncreasingLows,
	RuleIncreasingHighs:      ErrIncreasingHighs,
	RuleCoverage:             ErrCoverage,
	RuleAdjacentOverlap:      ErrAdjacentOverlap,
	RuleNonAdjacentExclusive: ErrNonAdjacentExclusive,
}

// ValidationError reports the first table rule that failed.
// Gear and Other name the offending gears when the rule is about specific
// gears; they are zero otherwise.
type ValidationError struct {
	Rule  Rule
	Gear  int
	Other int
}

func newValidationError(rule Rule, gear, other int) *ValidationError {
	return &ValidationError{Rule: rule, Gear: gear, Other: other}
}

// Error returns the fixed message for the rule.
func (e *ValidationError) Error() string {
	return e.Unwrap().Error()
}

// Unwrap exposes the rule's sentinel so errors.Is works against it.
func (e *ValidationError) Unwrap() error {
	if err, ok := ruleErrors[e.Rule]; ok {
		return err
	}
	return fmt.Errorf("unknown validation rule %d", int(e.Rule))
}

// Validate checks every table invariant and returns a *ValidationError for
// the first one violated, or nil.
func (t *Table) Validate() error {
	if t[0].Low != 0 {
		return newValidationError(RuleFirstGearLow, 1, 0)
	}

	for i, r := range t {
		if (i > 0 && r.Low <= 0) || r.High <= 0 {
			return newValidationError(RulePositiveBounds, i+MinGear, 0)
		}
	}

	for i, r := range t {
		if r.Low > r.High {
			return newValidationError(RuleLowNotAboveHigh, i+MinGear, 0)
		}
	}

	for i := 0; i < NumGears-1; i++ {
		if t[i].Low >= t[i+1].Low {
			return newValidationError(RuleIncreasingLows, i+MinGear, i+MinGear+1)
		}
	}

	for i := 0; i < NumGears-1; i++ {
		if t[i].High >= t[i+1].High {
			return newValidationError(RuleIncreasingHighs, i+MinGear, i+MinGear+1)
		}
	}

	if gear, ok := t.firstGap(); !ok {
		return newValidationError(RuleCoverage, gear, 0)
	}

	for i := 0; i < NumGears-1; i++ {
		if t[i+1].Low > t[i].High {
			return newValidationError(RuleAdjacentOverlap, i+MinGear, i+MinGear+1)
		}
	}

	for i := 0; i < NumGears; i++ {
		for j := i + 2; j < NumGears; j++ {
			if t[i].Intersects(t[j]) {
				return newValidationError(RuleNonAdjacentExclusive, i+MinGear, j+MinGear)
			}
		}
	}

	return nil
}

// firstGap walks the ranges in gear order and reports the first gear whose
// low bound leaves a speed between MinSpeed and MaxSpeed uncovered.
// Lows are already strictly increasing when this runs.
func (t *Table) firstGap() (gear int, ok bool) {
	reach := t.MinSpeed() - 1
	for i, r := range t {
		if r.Low > reach+1 {
			return i + MinGear, false
		}
		reach = max(reach, r.High)
	}
	return 0, reach >= t.MaxSpeed()
}

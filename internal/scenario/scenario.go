// Package scenario describes a fixed sequence of enemy actions and runs it.
//
// A Scenario is plain data: section headings and calls on one of three units.
// The robot unit exposes the robot's own operations, while the tank and
// adapter units expose the Attacker contract. Demo reproduces the classic
// walkthrough; custom scenarios are written in Lua (see LoadFile).
package scenario

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/adapter.pattern/internal/platform/errors"
	"github.com/louisbranch/adapter.pattern/internal/platform/i18n/catalog"
)

// StepKind tells a runner what a step does.
type StepKind string

const (
	// StepSection writes a heading.
	StepSection StepKind = "section"
	// StepCall invokes one operation on a unit.
	StepCall StepKind = "call"
)

// Unit names an enemy a scenario can address.
type Unit string

const (
	UnitRobot   Unit = "robot"
	UnitTank    Unit = "tank"
	UnitAdapter Unit = "adapter"
)

// Robot operations.
const (
	OpSmashWithHands = "smash_with_hands"
	OpWalkForward    = "walk_forward"
	OpReactToHuman   = "react_to_human"
)

// Attacker operations, shared by the tank and adapter units.
const (
	OpFireWeapon   = "fire_weapon"
	OpDriveForward = "drive_forward"
	OpAssignDriver = "assign_driver"
)

// Catalog keys for the demo section headings, see locales/*/scenario.yaml.
const (
	MsgSectionRobot   = "scenario.section.robot"
	MsgSectionTank    = "scenario.section.tank"
	MsgSectionAdapter = "scenario.section.adapter"
)

var unitOperations = map[Unit][]string{
	UnitRobot:   {OpSmashWithHands, OpWalkForward, OpReactToHuman},
	UnitTank:    {OpFireWeapon, OpDriveForward, OpAssignDriver},
	UnitAdapter: {OpFireWeapon, OpDriveForward, OpAssignDriver},
}

// Scenario is an ordered list of steps.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one heading or one call.
type Step struct {
	Kind StepKind
	// Title is a catalog key, or the heading itself when Literal is set.
	Title   string
	Literal bool

	Unit      Unit
	Operation string
	// Arg is the name passed to react_to_human and assign_driver.
	Arg string
}

// Label returns a short description used in logs and spans.
func (s Step) Label() string {
	if s.Kind == StepSection {
		return "section " + s.Title
	}
	return fmt.Sprintf("%s.%s", s.Unit, s.Operation)
}

// Section appends a heading looked up in the message catalog.
func (s *Scenario) Section(key string) {
	s.Steps = append(s.Steps, Step{Kind: StepSection, Title: key})
}

// SectionText appends a heading written exactly as given.
func (s *Scenario) SectionText(title string) {
	s.Steps = append(s.Steps, Step{Kind: StepSection, Title: title, Literal: true})
}

// Call appends an operation on unit. arg is ignored by operations that take
// no name.
func (s *Scenario) Call(unit Unit, operation string, arg string) {
	s.Steps = append(s.Steps, Step{Kind: StepCall, Unit: unit, Operation: operation, Arg: arg})
}

// Operations returns the operations unit accepts, nil for unknown units.
func Operations(unit Unit) []string {
	ops, ok := unitOperations[unit]
	if !ok {
		return nil
	}
	out := make([]string, len(ops))
	copy(out, ops)
	return out
}

// ValidateCall checks that unit exists and accepts operation.
func ValidateCall(unit Unit, operation string) error {
	ops, ok := unitOperations[unit]
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeScenarioUnknownUnit,
			fmt.Sprintf("unknown unit %q", unit),
			map[string]string{"Unit": string(unit)})
	}
	for _, op := range ops {
		if op == operation {
			return nil
		}
	}
	return apperrors.WithMetadata(apperrors.CodeScenarioUnknownOperation,
		fmt.Sprintf("unit %q has no operation %q (valid: %s)", unit, operation, strings.Join(ops, ", ")),
		map[string]string{"Unit": string(unit), "Operation": operation})
}

// ValidateHeading checks that key names a message in the base catalog.
func ValidateHeading(key string) error {
	if _, ok := catalog.Default().Message(catalog.BaseLocale, key); ok {
		return nil
	}
	return apperrors.WithMetadata(apperrors.CodeScenarioUnknownHeading,
		fmt.Sprintf("unknown heading key %q", key),
		map[string]string{"Heading": key})
}

// Validate checks that a scenario has steps and that every call and catalog
// heading is known.
func Validate(s *Scenario) error {
	if s == nil || len(s.Steps) == 0 {
		name := ""
		if s != nil {
			name = s.Name
		}
		return apperrors.WithMetadata(apperrors.CodeScenarioEmpty,
			fmt.Sprintf("scenario %q has no steps", name),
			map[string]string{"Scenario": name})
	}
	for i, step := range s.Steps {
		switch step.Kind {
		case StepSection:
			if step.Literal {
				continue
			}
			if err := ValidateHeading(step.Title); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		case StepCall:
			if err := ValidateCall(step.Unit, step.Operation); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		default:
			return fmt.Errorf("step %d: unknown step kind %q", i+1, step.Kind)
		}
	}
	return nil
}

// Demo returns the classic walkthrough: the robot on its own, the tank, and
// the robot again through its adapter.
func Demo() *Scenario {
	s := &Scenario{Name: "demo"}

	s.Section(MsgSectionRobot)
	s.Call(UnitRobot, OpReactToHuman, "Marcelo")
	s.Call(UnitRobot, OpWalkForward, "")
	s.Call(UnitRobot, OpSmashWithHands, "")

	s.Section(MsgSectionTank)
	s.Call(UnitTank, OpAssignDriver, "Jake")
	s.Call(UnitTank, OpDriveForward, "")
	s.Call(UnitTank, OpFireWeapon, "")

	s.Section(MsgSectionAdapter)
	s.Call(UnitAdapter, OpAssignDriver, "Alex")
	s.Call(UnitAdapter, OpDriveForward, "")
	s.Call(UnitAdapter, OpFireWeapon, "")

	return s
}

// Package errors provides structured domain errors with localized messages.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Enemy errors
	CodeRobotMissing Code = "ROBOT_MISSING"

	// Scenario errors
	CodeScenarioEmpty            Code = "SCENARIO_EMPTY"
	CodeScenarioUnknownUnit      Code = "SCENARIO_UNKNOWN_UNIT"
	CodeScenarioUnknownOperation Code = "SCENARIO_UNKNOWN_OPERATION"
	CodeScenarioUnknownHeading   Code = "SCENARIO_UNKNOWN_HEADING"
	CodeScenarioLoadFailed       Code = "SCENARIO_LOAD_FAILED"

	// Configuration errors
	CodeLocaleUnsupported Code = "LOCALE_UNSUPPORTED"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeRobotMissing,
		CodeScenarioEmpty,
		CodeScenarioUnknownUnit,
		CodeScenarioUnknownOperation,
		CodeScenarioUnknownHeading,
		CodeLocaleUnsupported:
		return codes.InvalidArgument

	// FailedPrecondition - the scenario source cannot be used as given
	case CodeScenarioLoadFailed:
		return codes.FailedPrecondition

	default:
		return codes.Internal
	}
}

package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/adapter.pattern/internal/enemy"
	"github.com/louisbranch/adapter.pattern/internal/platform/i18n/catalog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/adapter.pattern/internal/scenario"

// Cast holds the enemies a scenario addresses.
type Cast struct {
	Robot   *enemy.Robot
	Tank    enemy.Attacker
	Adapter enemy.Attacker
}

// NewCast builds a robot, a tank and an adapter around the robot, all
// reporting through deps.
func NewCast(deps enemy.Deps) (Cast, error) {
	robot := enemy.NewRobot(deps)
	adapter, err := enemy.NewRobotAdapter(robot)
	if err != nil {
		return Cast{}, err
	}
	return Cast{
		Robot:   robot,
		Tank:    enemy.NewTank(deps),
		Adapter: adapter,
	}, nil
}

// Config controls scenario execution.
type Config struct {
	// Out receives headings. Enemies write their own reports; pass the same
	// writer to enemy.Deps so the two interleave.
	Out io.Writer
	// Locale selects catalog headings. Empty means the base locale.
	Locale  string
	Logger  *log.Logger
	Verbose bool

	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// Runner executes scenarios against a Cast, one step at a time.
type Runner struct {
	cast     Cast
	out      io.Writer
	headings *catalog.Bundle
	locale   string
	logger   *log.Logger
	verbose  bool
	tracer   trace.Tracer
}

// NewRunner prepares a runner for cast.
func NewRunner(cast Cast, cfg Config) (*Runner, error) {
	if cast.Robot == nil || cast.Tank == nil || cast.Adapter == nil {
		return nil, errors.New("cast requires a robot, a tank and an adapter")
	}
	out := cfg.Out
	if out == nil {
		out = io.Discard
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}
	provider := cfg.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &Runner{
		cast:     cast,
		out:      out,
		headings: catalog.Default(),
		locale:   cfg.Locale,
		logger:   logger,
		verbose:  cfg.Verbose,
		tracer:   provider.Tracer(tracerName),
	}, nil
}

// Run executes scenario steps in order. A blank line precedes every heading
// except one that opens the output. Headings are written as plain text, never
// as format strings. Cancelling ctx stops the run before the
// next step.
func (r *Runner) Run(ctx context.Context, scenario *Scenario) error {
	if err := Validate(scenario); err != nil {
		return err
	}

	runID := uuid.NewString()
	ctx, span := r.tracer.Start(ctx, "scenario.run", trace.WithAttributes(
		attribute.String("scenario.name", scenario.Name),
		attribute.String("scenario.run_id", runID),
		attribute.Int("scenario.steps", len(scenario.Steps)),
	))
	defer span.End()

	r.logf("scenario start: %s (%d steps, run %s)", scenario.Name, len(scenario.Steps), runID)
	for index, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "cancelled")
			return fmt.Errorf("step %d (%s): %w", index+1, step.Label(), err)
		}
		stepNumber := index + 1
		stepStart := time.Now()
		_, stepSpan := r.tracer.Start(ctx, "scenario.step", trace.WithAttributes(
			attribute.Int("scenario.step.index", stepNumber),
			attribute.String("scenario.step.kind", string(step.Kind)),
			attribute.String("scenario.step.unit", string(step.Unit)),
			attribute.String("scenario.step.operation", step.Operation),
		))
		err := r.runStep(step, index > 0)
		if err != nil {
			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
		}
		stepSpan.End()
		if err != nil {
			span.SetStatus(codes.Error, "step failed")
			return fmt.Errorf("step %d (%s): %w", stepNumber, step.Label(), err)
		}
		r.logf("step %d/%d done: %s (%s)", stepNumber, len(scenario.Steps), step.Label(), time.Since(stepStart))
	}
	r.logf("scenario done: %s", scenario.Name)
	return nil
}

func (r *Runner) runStep(step Step, separate bool) error {
	switch step.Kind {
	case StepSection:
		title := step.Title
		if !step.Literal {
			text, ok := r.headings.Message(r.locale, step.Title)
			if !ok {
				return ValidateHeading(step.Title)
			}
			title = text
		}
		if separate {
			fmt.Fprintln(r.out)
		}
		fmt.Fprintln(r.out, title)
		return nil
	case StepCall:
		return r.call(step)
	default:
		return fmt.Errorf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) call(step Step) error {
	switch step.Unit {
	case UnitRobot:
		switch step.Operation {
		case OpSmashWithHands:
			r.cast.Robot.SmashWithHands()
		case OpWalkForward:
			r.cast.Robot.WalkForward()
		case OpReactToHuman:
			r.cast.Robot.ReactToHuman(step.Arg)
		default:
			return ValidateCall(step.Unit, step.Operation)
		}
		return nil
	case UnitTank:
		return callAttacker(r.cast.Tank, step)
	case UnitAdapter:
		return callAttacker(r.cast.Adapter, step)
	default:
		return ValidateCall(step.Unit, step.Operation)
	}
}

func callAttacker(attacker enemy.Attacker, step Step) error {
	switch step.Operation {
	case OpFireWeapon:
		attacker.FireWeapon()
	case OpDriveForward:
		attacker.DriveForward()
	case OpAssignDriver:
		attacker.AssignDriver(step.Arg)
	default:
		return ValidateCall(step.Unit, step.Operation)
	}
	return nil
}

func (r *Runner) logf(format string, args ...any) {
	if !r.verbose || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}

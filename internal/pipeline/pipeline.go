// Package pipeline runs the six planning stages in fixed order, reporting
// progress per stage and aborting on the first failure.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"macroplan/internal/compiler"
	"macroplan/internal/intake"
	"macroplan/internal/metabolic"
	"macroplan/internal/plan"
	"macroplan/internal/qa"
	"macroplan/internal/render"
)

// Stage numbers, in execution order.
const (
	StageNormalizer = 1
	StageCalculator = 2
	StageCurator    = 3
	StageCompiler   = 4
	StageValidator  = 5
	StageRenderer   = 6
)

var stageNames = map[int]string{
	StageNormalizer: "Intake Normalizer",
	StageCalculator: "Metabolic Calculator",
	StageCurator:    "Recipe Curator",
	StageCompiler:   "Nutrition Compiler",
	StageValidator:  "QA Validator",
	StageRenderer:   "Brand Renderer",
}

// ProgressEvent reports a stage starting, plus one final completion event
// after the last stage. A successful run emits seven events with stage
// numbers 1,2,3,4,5,6,6.
type ProgressEvent struct {
	Agent     int    `json:"agent"`
	AgentName string `json:"agent_name"`
	Message   string `json:"message"`
}

// ProgressFunc receives progress events. May be nil.
type ProgressFunc func(ProgressEvent)

// Curator proposes draft meals for each day and slot.
type Curator interface {
	Curate(ctx context.Context, profile *metabolic.Profile, in *intake.ClientIntake) ([]plan.DraftDay, error)
}

// Renderer produces the human-facing deliverables from a validated plan.
type Renderer interface {
	Render(p *plan.ValidatedPlan) (*render.Deliverables, error)
}

// StageError wraps a failure with the stage that produced it.
type StageError struct {
	Stage     int
	StageName string
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %d (%s) failed: %v", e.Stage, e.StageName, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Result is the outcome of one pipeline run. A run either completes all six
// stages with a validated plan and deliverables, or fails with a single
// coherent error; there is no partial success.
type Result struct {
	Success      bool                 `json:"success"`
	Plan         *plan.ValidatedPlan  `json:"plan,omitempty"`
	Profile      *metabolic.Profile   `json:"profile,omitempty"`
	Deliverables *render.Deliverables `json:"deliverables,omitempty"`
	Error        string               `json:"error,omitempty"`
}

// Orchestrator wires the stages together. It holds no mutable state across
// runs; a single instance is safe to use concurrently for different intakes.
type Orchestrator struct {
	curator   Curator
	validator *qa.Validator
	renderer  Renderer
}

// New creates an Orchestrator over the given external collaborators.
func New(curator Curator, renderer Renderer) *Orchestrator {
	return &Orchestrator{
		curator:   curator,
		validator: qa.NewValidator(),
		renderer:  renderer,
	}
}

// Run executes the full pipeline for one intake. Stage N+1 never starts
// before stage N finishes, and no stage runs after a failure.
func (o *Orchestrator) Run(ctx context.Context, raw intake.RawIntakeForm, onProgress ProgressFunc) (*Result, error) {
	emit := func(stage int, message string) {
		if onProgress != nil {
			onProgress(ProgressEvent{Agent: stage, AgentName: stageNames[stage], Message: message})
		}
	}
	fail := func(stage int, err error) (*Result, error) {
		stageErr := &StageError{Stage: stage, StageName: stageNames[stage], Err: err}
		return &Result{Success: false, Error: stageErr.Error()}, stageErr
	}

	emit(StageNormalizer, "Validating intake survey")
	clientIntake, err := intake.Normalize(raw)
	if err != nil {
		return fail(StageNormalizer, err)
	}

	emit(StageCalculator, "Calculating metabolic profile")
	profile, err := metabolic.Calculate(clientIntake)
	if err != nil {
		return fail(StageCalculator, err)
	}

	emit(StageCurator, "Curating draft meals")
	drafts, err := o.curator.Curate(ctx, profile, clientIntake)
	if err != nil {
		return fail(StageCurator, err)
	}

	emit(StageCompiler, "Compiling daily nutrition totals")
	days, err := compiler.Compile(drafts, profile)
	if err != nil {
		return fail(StageCompiler, err)
	}

	emit(StageValidator, "Validating plan against targets")
	validated := o.validator.Validate(days, profile)
	validated.ID = uuid.NewString()
	validated.ClientName = clientIntake.ClientName
	validated.CreatedAt = time.Now().UTC()

	emit(StageRenderer, "Rendering deliverables")
	deliverables, err := o.renderer.Render(validated)
	if err != nil {
		return fail(StageRenderer, err)
	}
	emit(StageRenderer, "Plan complete")

	return &Result{
		Success:      true,
		Plan:         validated,
		Profile:      profile,
		Deliverables: deliverables,
	}, nil
}

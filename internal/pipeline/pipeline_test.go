package pipeline

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"macroplan/internal/intake"
	"macroplan/internal/metabolic"
	"macroplan/internal/plan"
	"macroplan/internal/render"
)

type mockCurator struct {
	called bool
	fail   error
}

func (m *mockCurator) Curate(ctx context.Context, profile *metabolic.Profile, in *intake.ClientIntake) ([]plan.DraftDay, error) {
	m.called = true
	if m.fail != nil {
		return nil, m.fail
	}

	// Three meals per day, split evenly across the daily goal so the QA
	// validator passes without adjustment.
	mealKcal := float64(profile.GoalKcal) / 3
	meal := func(slot, name string) plan.Meal {
		return plan.Meal{
			Slot: slot,
			Name: name,
			Nutrition: plan.Nutrition{
				Kcal:     mealKcal,
				ProteinG: float64(profile.ProteinG) / 3,
				CarbsG:   float64(profile.CarbsG) / 3,
				FatG:     float64(profile.FatG) / 3,
			},
			Ingredients: []plan.Ingredient{{Name: "chicken breast", Amount: 150, Unit: "g"}},
		}
	}

	return []plan.DraftDay{
		{
			DayNumber: 1,
			DayName:   "Monday",
			Meals:     []plan.Meal{meal("breakfast", "Oats"), meal("lunch", "Chicken Bowl"), meal("dinner", "Stir Fry")},
		},
		{
			DayNumber: 2,
			DayName:   "Tuesday",
			Meals:     []plan.Meal{meal("breakfast", "Eggs"), meal("lunch", "Turkey Wrap"), meal("dinner", "Salmon Plate")},
		},
	}, nil
}

type mockRenderer struct {
	called bool
	fail   error
}

func (m *mockRenderer) Render(p *plan.ValidatedPlan) (*render.Deliverables, error) {
	m.called = true
	if m.fail != nil {
		return nil, m.fail
	}
	return &render.Deliverables{HTMLPath: "plan.html", PDFPath: "plan.pdf"}, nil
}

func validForm() intake.RawIntakeForm {
	return intake.RawIntakeForm{
		ClientName:    "Alex Doe",
		Age:           30,
		Sex:           "male",
		HeightCm:      180,
		WeightKg:      80,
		GoalType:      "cut",
		GoalRate:      1,
		ActivityLevel: "moderately_active",
		DietaryStyle:  "omnivore",
		MacroStyle:    "balanced",
		MealsPerDay:   3,
		PlanDays:      2,
	}
}

func TestRun(t *testing.T) {
	t.Run("SuccessfulRunEmitsOrderedProgress", func(t *testing.T) {
		curator := &mockCurator{}
		renderer := &mockRenderer{}
		orchestrator := New(curator, renderer)

		var stages []int
		result, err := orchestrator.Run(context.Background(), validForm(), func(ev ProgressEvent) {
			stages = append(stages, ev.Agent)
		})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		if !result.Success {
			t.Fatalf("Expected success, got error %q", result.Error)
		}
		want := []int{1, 2, 3, 4, 5, 6, 6}
		if !reflect.DeepEqual(stages, want) {
			t.Errorf("Expected progress stages %v, got %v", want, stages)
		}
		if result.Plan == nil || result.Profile == nil || result.Deliverables == nil {
			t.Fatal("Expected plan, profile, and deliverables on success")
		}
		if result.Plan.ID == "" {
			t.Error("Expected the validated plan to carry an ID")
		}
		if result.Plan.ClientName != "Alex Doe" {
			t.Errorf("Expected client name on plan, got %q", result.Plan.ClientName)
		}
		if result.Plan.QA.Status != plan.StatusPass {
			t.Errorf("Expected QA PASS for on-target meals, got %s", result.Plan.QA.Status)
		}
		if len(result.Plan.Days) != 2 {
			t.Errorf("Expected 2 plan days, got %d", len(result.Plan.Days))
		}
	})

	t.Run("InvalidIntakeFailsFast", func(t *testing.T) {
		curator := &mockCurator{}
		renderer := &mockRenderer{}
		orchestrator := New(curator, renderer)

		form := validForm()
		form.Age = 150

		var stages []int
		result, err := orchestrator.Run(context.Background(), form, func(ev ProgressEvent) {
			stages = append(stages, ev.Agent)
		})
		if err == nil {
			t.Fatal("Expected error for invalid intake, got nil")
		}
		if result.Success {
			t.Error("Expected success=false for invalid intake")
		}
		if result.Error == "" {
			t.Error("Expected a populated error message")
		}
		if curator.called {
			t.Error("Expected Recipe Curator to never run after intake failure")
		}
		if renderer.called {
			t.Error("Expected Brand Renderer to never run after intake failure")
		}
		for _, stage := range stages {
			if stage >= StageCurator {
				t.Errorf("Expected zero progress events for stages 3-6, saw stage %d", stage)
			}
		}

		var verr *intake.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Expected the stage error to wrap a ValidationError, got %v", err)
		}
		var stageErr *StageError
		if !errors.As(err, &stageErr) {
			t.Fatalf("Expected a StageError, got %T", err)
		}
		if stageErr.Stage != StageNormalizer {
			t.Errorf("Expected failure at stage %d, got %d", StageNormalizer, stageErr.Stage)
		}
	})

	t.Run("CuratorFailureStopsPipeline", func(t *testing.T) {
		curator := &mockCurator{fail: errors.New("llm unavailable")}
		renderer := &mockRenderer{}
		orchestrator := New(curator, renderer)

		var stages []int
		result, err := orchestrator.Run(context.Background(), validForm(), func(ev ProgressEvent) {
			stages = append(stages, ev.Agent)
		})
		if err == nil {
			t.Fatal("Expected error from curator failure, got nil")
		}
		if result.Success || result.Plan != nil {
			t.Error("Expected no partial plan after curator failure")
		}
		if renderer.called {
			t.Error("Expected renderer to never run after curator failure")
		}
		want := []int{1, 2, 3}
		if !reflect.DeepEqual(stages, want) {
			t.Errorf("Expected progress stages %v, got %v", want, stages)
		}
	})

	t.Run("RendererFailureReturnsNoDeliverables", func(t *testing.T) {
		curator := &mockCurator{}
		renderer := &mockRenderer{fail: errors.New("disk full")}
		orchestrator := New(curator, renderer)

		result, err := orchestrator.Run(context.Background(), validForm(), nil)
		if err == nil {
			t.Fatal("Expected error from renderer failure, got nil")
		}
		if result.Success || result.Deliverables != nil {
			t.Error("Expected failure result without deliverables")
		}

		var stageErr *StageError
		if !errors.As(err, &stageErr) {
			t.Fatalf("Expected a StageError, got %T", err)
		}
		if stageErr.Stage != StageRenderer {
			t.Errorf("Expected failure at stage %d, got %d", StageRenderer, stageErr.Stage)
		}
	})

	t.Run("NilProgressCallbackIsSafe", func(t *testing.T) {
		orchestrator := New(&mockCurator{}, &mockRenderer{})
		if _, err := orchestrator.Run(context.Background(), validForm(), nil); err != nil {
			t.Fatalf("Run failed with nil callback: %v", err)
		}
	})
}

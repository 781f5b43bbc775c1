package metabolic

import (
	"math"
	"reflect"
	"testing"

	"macroplan/internal/intake"
)

func baseIntake() *intake.ClientIntake {
	return &intake.ClientIntake{
		Age:           30,
		Sex:           intake.SexMale,
		HeightCm:      180,
		WeightKg:      80,
		GoalType:      intake.GoalCut,
		GoalRate:      1,
		ActivityLevel: intake.ActivityModeratelyActive,
		DietaryStyle:  intake.DietOmnivore,
		MacroStyle:    intake.MacroBalanced,
		MealsPerDay:   3,
		SnacksPerDay:  1,
		PlanDays:      7,
	}
}

func TestCalculate(t *testing.T) {
	t.Run("KnownProfile", func(t *testing.T) {
		profile, err := Calculate(baseIntake())
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}

		if profile.BMRKcal != 1780 {
			t.Errorf("Expected BMR 1780, got %d", profile.BMRKcal)
		}
		if profile.TDEEKcal != 2759 {
			t.Errorf("Expected TDEE 2759, got %d", profile.TDEEKcal)
		}
		if profile.GoalKcal != 2259 {
			t.Errorf("Expected goal 2259 kcal, got %d", profile.GoalKcal)
		}
		if profile.TrainingDayBonusKcal != 200 {
			t.Errorf("Expected training bonus 200, got %d", profile.TrainingDayBonusKcal)
		}
		if profile.TrainingDayKcal != 2459 {
			t.Errorf("Expected training day 2459 kcal, got %d", profile.TrainingDayKcal)
		}
		if profile.RestDayKcal != 2259 {
			t.Errorf("Expected rest day 2259 kcal, got %d", profile.RestDayKcal)
		}
		if profile.Method != CalculationMethod {
			t.Errorf("Expected method %q, got %q", CalculationMethod, profile.Method)
		}
	})

	t.Run("FemaleBMR", func(t *testing.T) {
		in := baseIntake()
		in.Sex = intake.SexFemale

		profile, err := Calculate(in)
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}
		// 10*80 + 6.25*180 - 5*30 - 161
		if profile.BMRKcal != 1614 {
			t.Errorf("Expected BMR 1614, got %d", profile.BMRKcal)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		first, err := Calculate(baseIntake())
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}
		second, err := Calculate(baseIntake())
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Expected identical profiles, got %+v vs %+v", first, second)
		}
	})

	t.Run("BulkAddsCalories", func(t *testing.T) {
		in := baseIntake()
		in.GoalType = intake.GoalBulk
		in.GoalRate = 0.5

		profile, err := Calculate(in)
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}
		if profile.GoalKcal != 2759+175 {
			t.Errorf("Expected goal %d kcal, got %d", 2759+175, profile.GoalKcal)
		}
	})

	t.Run("MaintainKeepsTDEE", func(t *testing.T) {
		in := baseIntake()
		in.GoalType = intake.GoalMaintain
		in.GoalRate = 0

		profile, err := Calculate(in)
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}
		if profile.GoalKcal != profile.TDEEKcal {
			t.Errorf("Expected goal to equal TDEE %d, got %d", profile.TDEEKcal, profile.GoalKcal)
		}
	})

	t.Run("FiberFloor", func(t *testing.T) {
		in := baseIntake()
		in.WeightKg = 45
		in.HeightCm = 150
		in.ActivityLevel = intake.ActivitySedentary

		profile, err := Calculate(in)
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}
		if profile.FiberG < 25 {
			t.Errorf("Expected fiber target of at least 25g, got %d", profile.FiberG)
		}
	})

	t.Run("UnknownActivityFails", func(t *testing.T) {
		in := baseIntake()
		in.ActivityLevel = intake.ActivityLevel("couch_potato")

		if _, err := Calculate(in); err == nil {
			t.Error("Expected error for unknown activity level, got nil")
		}
	})

	t.Run("UnknownMacroStyleFails", func(t *testing.T) {
		in := baseIntake()
		in.MacroStyle = intake.MacroStyle("carnivore")

		if _, err := Calculate(in); err == nil {
			t.Error("Expected error for unknown macro style, got nil")
		}
	})
}

func TestMacroSplits(t *testing.T) {
	styles := []intake.MacroStyle{
		intake.MacroBalanced,
		intake.MacroHighProtein,
		intake.MacroLowCarb,
		intake.MacroKeto,
	}

	for _, style := range styles {
		t.Run(string(style), func(t *testing.T) {
			protein, carbs, fat, ok := MacroSplitFor(style)
			if !ok {
				t.Fatalf("No split for style %q", style)
			}
			if protein+carbs+fat != 100 {
				t.Errorf("Expected split to sum to 100, got %d", protein+carbs+fat)
			}

			in := baseIntake()
			in.MacroStyle = style
			profile, err := Calculate(in)
			if err != nil {
				t.Fatalf("Calculate failed: %v", err)
			}

			// Gram targets must reconstruct goal calories within 1%.
			rebuilt := float64(profile.ProteinG*4 + profile.CarbsG*4 + profile.FatG*9)
			diff := math.Abs(rebuilt-float64(profile.GoalKcal)) / float64(profile.GoalKcal)
			if diff > 0.01 {
				t.Errorf("Macro grams rebuild %.0f kcal vs goal %d (%.2f%% off)", rebuilt, profile.GoalKcal, diff*100)
			}
		})
	}
}

func TestDistributeSlots(t *testing.T) {
	t.Run("SlotsCoverDailyTargets", func(t *testing.T) {
		profile, err := Calculate(baseIntake())
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}

		if len(profile.MealSlots) != 4 {
			t.Fatalf("Expected 4 slots (3 meals + 1 snack), got %d", len(profile.MealSlots))
		}

		var totalPct float64
		var totalKcal int
		for _, slot := range profile.MealSlots {
			if slot.Label == "" {
				t.Error("Expected every slot to have a label")
			}
			if slot.Kcal <= 0 {
				t.Errorf("Slot %q has %d kcal, expected positive", slot.Label, slot.Kcal)
			}
			if slot.ProteinG <= 0 {
				t.Errorf("Slot %q has %d g protein, expected positive", slot.Label, slot.ProteinG)
			}
			totalPct += slot.PercentOfDaily
			totalKcal += slot.Kcal
		}

		if totalPct < 90 || totalPct > 110 {
			t.Errorf("Slot percentages sum to %.1f, expected within 90-110", totalPct)
		}

		// Slot calories should approximate the daily goal within 10%.
		diff := math.Abs(float64(totalKcal-profile.GoalKcal)) / float64(profile.GoalKcal)
		if diff > 0.10 {
			t.Errorf("Slot kcal sum %d vs goal %d (%.1f%% off)", totalKcal, profile.GoalKcal, diff*100)
		}
	})

	t.Run("ExtraMealsGetNumberedLabels", func(t *testing.T) {
		in := baseIntake()
		in.MealsPerDay = 5
		in.SnacksPerDay = 2

		profile, err := Calculate(in)
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}
		labels := make([]string, 0, len(profile.MealSlots))
		for _, s := range profile.MealSlots {
			labels = append(labels, s.Label)
		}
		want := []string{"breakfast", "lunch", "dinner", "meal 4", "meal 5", "snack 1", "snack 2"}
		if !reflect.DeepEqual(labels, want) {
			t.Errorf("Expected labels %v, got %v", want, labels)
		}
	})
}

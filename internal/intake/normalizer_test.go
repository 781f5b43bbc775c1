package intake

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func validRawForm() RawIntakeForm {
	return RawIntakeForm{
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
		SnacksPerDay:  1,
	}
}

func TestNormalize(t *testing.T) {
	t.Run("ValidForm", func(t *testing.T) {
		in, err := Normalize(validRawForm())
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}
		if in.HeightCm != 180 || in.WeightKg != 80 {
			t.Errorf("Expected 180cm/80kg, got %gcm/%gkg", in.HeightCm, in.WeightKg)
		}
		if in.PlanDays != 7 {
			t.Errorf("Expected default 7 plan days, got %d", in.PlanDays)
		}
		if in.Sex != SexMale || in.GoalType != GoalCut {
			t.Errorf("Expected male/cut, got %s/%s", in.Sex, in.GoalType)
		}
	})

	t.Run("ImperialConversion", func(t *testing.T) {
		raw := validRawForm()
		raw.HeightCm = 0
		raw.HeightFeet = 5
		raw.HeightIn = 11
		raw.WeightKg = 0
		raw.WeightLbs = 176

		in, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}
		if math.Abs(in.HeightCm-180.34) > 0.01 {
			t.Errorf("Expected height 180.34cm, got %g", in.HeightCm)
		}
		if math.Abs(in.WeightKg-79.83) > 0.01 {
			t.Errorf("Expected weight ~79.83kg, got %g", in.WeightKg)
		}
	})

	t.Run("MetricTakesPrecedence", func(t *testing.T) {
		raw := validRawForm()
		raw.HeightFeet = 5
		raw.HeightIn = 2
		raw.WeightLbs = 130

		in, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}
		if in.HeightCm != 180 || in.WeightKg != 80 {
			t.Errorf("Expected metric values 180cm/80kg to win, got %gcm/%gkg", in.HeightCm, in.WeightKg)
		}
	})

	t.Run("StringSetsCanonicalized", func(t *testing.T) {
		raw := validRawForm()
		raw.Allergies = []string{" Peanuts ", "shellfish", "PEANUTS", "", "   "}
		raw.Exclusions = []string{"Cilantro", "cilantro "}
		raw.CuisinePreferences = []string{"Thai", "Mexican", "thai"}

		in, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}
		if want := []string{"peanuts", "shellfish"}; !reflect.DeepEqual(in.Allergies, want) {
			t.Errorf("Expected allergies %v, got %v", want, in.Allergies)
		}
		if want := []string{"cilantro"}; !reflect.DeepEqual(in.Exclusions, want) {
			t.Errorf("Expected exclusions %v, got %v", want, in.Exclusions)
		}
		if want := []string{"thai", "mexican"}; !reflect.DeepEqual(in.CuisinePreferences, want) {
			t.Errorf("Expected cuisines %v, got %v", want, in.CuisinePreferences)
		}
	})

	t.Run("AgeOutOfRange", func(t *testing.T) {
		for _, age := range []int{12, 101, 150, -1} {
			raw := validRawForm()
			raw.Age = age

			_, err := Normalize(raw)
			if err == nil {
				t.Fatalf("Expected error for age %d, got nil", age)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Expected ValidationError for age %d, got %T", age, err)
			}
		}
	})

	t.Run("UnknownEnums", func(t *testing.T) {
		cases := map[string]func(*RawIntakeForm){
			"sex":            func(r *RawIntakeForm) { r.Sex = "unknown" },
			"goal_type":      func(r *RawIntakeForm) { r.GoalType = "shred" },
			"activity_level": func(r *RawIntakeForm) { r.ActivityLevel = "sometimes" },
			"dietary_style":  func(r *RawIntakeForm) { r.DietaryStyle = "fruitarian" },
			"macro_style":    func(r *RawIntakeForm) { r.MacroStyle = "seefood" },
		}
		for field, mutate := range cases {
			raw := validRawForm()
			mutate(&raw)

			_, err := Normalize(raw)
			if err == nil {
				t.Errorf("Expected error for bad %s, got nil", field)
				continue
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Expected ValidationError for bad %s, got %T", field, err)
			}
		}
	})

	t.Run("EnumsCaseInsensitive", func(t *testing.T) {
		raw := validRawForm()
		raw.Sex = " Male "
		raw.GoalType = "CUT"

		in, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}
		if in.Sex != SexMale || in.GoalType != GoalCut {
			t.Errorf("Expected case-insensitive enum match, got %s/%s", in.Sex, in.GoalType)
		}
	})

	t.Run("MissingHeight", func(t *testing.T) {
		raw := validRawForm()
		raw.HeightCm = 0

		if _, err := Normalize(raw); err == nil {
			t.Error("Expected error for missing height, got nil")
		}
	})

	t.Run("MaintainZeroesGoalRate", func(t *testing.T) {
		raw := validRawForm()
		raw.GoalType = "maintain"
		raw.GoalRate = 1.5

		in, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}
		if in.GoalRate != 0 {
			t.Errorf("Expected goal rate 0 for maintain, got %g", in.GoalRate)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		raw := validRawForm()
		raw.Allergies = []string{" Peanuts ", "PEANUTS", "dairy"}

		first, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}

		// Feed the canonical sets back through as if re-submitted.
		raw.Allergies = first.Allergies
		second, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize failed on re-submission: %v", err)
		}
		if !reflect.DeepEqual(first.Allergies, second.Allergies) {
			t.Errorf("Expected idempotent normalization, got %v then %v", first.Allergies, second.Allergies)
		}
	})
}

func TestCanonicalizeSet(t *testing.T) {
	got := CanonicalizeSet([]string{"  Gluten ", "gluten", "", "  ", "Soy", "SOY "})
	want := []string{"gluten", "soy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if got := CanonicalizeSet(nil); len(got) != 0 {
		t.Errorf("Expected empty set for nil input, got %v", got)
	}
}

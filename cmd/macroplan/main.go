package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"macroplan/internal/config"
	"macroplan/internal/curator"
	"macroplan/internal/database"
	"macroplan/internal/intake"
	"macroplan/internal/llm"
	"macroplan/internal/logger"
	"macroplan/internal/pipeline"
	"macroplan/internal/planstore"
	"macroplan/internal/render"
	"macroplan/internal/swap"
)

func main() {
	// A missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	defer db.Close()

	planRepo := planstore.NewRepository(db.SQL)

	switch os.Args[1] {
	case "plan":
		if len(os.Args) < 3 {
			log.Fatal("Usage: macroplan plan <intake.json>")
		}
		runPlan(ctx, cfg, log, planRepo, os.Args[2])
	case "swap":
		runSwap(ctx, log, planRepo, os.Args[2:])
	case "plans":
		runList(ctx, log, planRepo, os.Args[2:])
	case "plans-cleanup":
		runCleanup(ctx, log, planRepo, os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runPlan(ctx context.Context, cfg *config.Config, log *logger.Logger, repo *planstore.Repository, intakePath string) {
	data, err := os.ReadFile(intakePath)
	if err != nil {
		log.Fatal("Failed to read intake file", "path", intakePath, "error", err)
	}

	var raw intake.RawIntakeForm
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Fatal("Failed to parse intake file", "path", intakePath, "error", err)
	}

	textGen, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal("Failed to initialize Gemini client", "error", err)
	}
	if closer, ok := textGen.(llm.Closer); ok {
		defer closer.Close()
	}

	renderer, err := render.NewRenderer(cfg.OutputDir, cfg.BrandName)
	if err != nil {
		log.Fatal("Failed to initialize renderer", "error", err)
	}

	orchestrator := pipeline.New(curator.NewCurator(textGen), renderer)
	result, err := orchestrator.Run(ctx, raw, func(ev pipeline.ProgressEvent) {
		log.Info(ev.Message, "stage", ev.Agent, "agent", ev.AgentName)
	})
	if err != nil {
		log.Fatal("Pipeline failed", "error", err)
	}

	if err := repo.Save(ctx, result.Plan, result.Profile); err != nil {
		log.Fatal("Failed to save plan", "plan_id", result.Plan.ID, "error", err)
	}

	log.Info("Plan generated",
		"plan_id", result.Plan.ID,
		"qa_status", result.Plan.QA.Status,
		"qa_score", result.Plan.QA.Score,
		"html", result.Deliverables.HTMLPath,
		"pdf", result.Deliverables.PDFPath,
	)
}

func runSwap(ctx context.Context, log *logger.Logger, repo *planstore.Repository, args []string) {
	swapCmd := flag.NewFlagSet("swap", flag.ExitOnError)
	planID := swapCmd.String("plan", "", "Plan ID")
	day := swapCmd.Int("day", 0, "Day number of the meal to replace")
	slot := swapCmd.String("slot", "", "Meal slot to replace (e.g. lunch)")
	style := swapCmd.String("style", "omnivore", "Dietary style")
	allergies := swapCmd.String("allergies", "", "Comma-separated allergy keywords")
	exclusions := swapCmd.String("exclusions", "", "Comma-separated exclusion keywords")
	swapCmd.Parse(args)

	if *planID == "" || *day == 0 || *slot == "" {
		log.Fatal("Usage: macroplan swap -plan <id> -day <n> -slot <slot>")
	}

	stored, err := repo.Get(ctx, *planID)
	if err != nil {
		log.Fatal("Failed to load plan", "plan_id", *planID, "error", err)
	}
	if stored == nil {
		log.Fatal("Plan not found", "plan_id", *planID)
	}

	matcher := swap.NewMatcher()
	candidates, err := matcher.FindAlternatives(stored.Plan, swap.Request{
		DayNumber:    *day,
		Slot:         *slot,
		DietaryStyle: intake.DietaryStyle(*style),
		Allergies:    strings.Split(*allergies, ","),
		Exclusions:   strings.Split(*exclusions, ","),
	})
	if err != nil {
		log.Fatal("Swap lookup failed", "error", err)
	}

	if len(candidates) == 0 {
		fmt.Println("No alternatives within tolerance.")
		return
	}
	fmt.Printf("Found %d alternative(s) for day %d %s:\n", len(candidates), *day, *slot)
	for _, c := range candidates {
		fmt.Printf("  - %s (day %d, %.0f kcal, %.0fg protein)\n",
			c.Meal.Name, c.DayNumber, c.Meal.Nutrition.Kcal, c.Meal.Nutrition.ProteinG)
	}
}

func runList(ctx context.Context, log *logger.Logger, repo *planstore.Repository, args []string) {
	listCmd := flag.NewFlagSet("plans", flag.ExitOnError)
	limit := listCmd.Int("limit", 10, "Number of plans to list")
	listCmd.Parse(args)

	plans, err := repo.ListRecent(ctx, *limit)
	if err != nil {
		log.Fatal("Failed to list plans", "error", err)
	}
	if len(plans) == 0 {
		fmt.Println("No stored plans.")
		return
	}
	for _, p := range plans {
		fmt.Printf("%s  %-20s  %s (score %d)  %s\n",
			p.ID, p.Plan.ClientName, p.Plan.QA.Status, p.Plan.QA.Score,
			p.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runCleanup(ctx context.Context, log *logger.Logger, repo *planstore.Repository, args []string) {
	cleanupCmd := flag.NewFlagSet("plans-cleanup", flag.ExitOnError)
	days := cleanupCmd.Int("days", 90, "Keep plans from the last N days")
	cleanupCmd.Parse(args)

	affected, err := repo.Cleanup(ctx, *days)
	if err != nil {
		log.Fatal("Cleanup failed", "error", err)
	}
	fmt.Printf("Removed %d old plan(s).\n", affected)
}

func printUsage() {
	fmt.Println("Usage: macroplan <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan <intake.json>   Generate, validate, and render a meal plan")
	fmt.Println("  swap                 Find swap candidates for a meal in a stored plan")
	fmt.Println("  plans                List recently generated plans")
	fmt.Println("  plans-cleanup        Remove old stored plans")
}

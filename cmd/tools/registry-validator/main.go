// cmd/tools/registry-validator/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/Shubhankar10/Map-Assistant/internal/common/config"
	"github.com/Shubhankar10/Map-Assistant/internal/common/database"
	"github.com/Shubhankar10/Map-Assistant/internal/common/validation"
	"github.com/Shubhankar10/Map-Assistant/internal/core/analysis"
	"github.com/Shubhankar10/Map-Assistant/internal/core/decompose"
	"github.com/Shubhankar10/Map-Assistant/internal/models"
	"github.com/Shubhankar10/Map-Assistant/pkg/registry"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)

	registryPath := validateCmd.String("path", "", "Path to registry file (empty = built-in catalog)")
	exportPath := exportCmd.String("out", "configs/operation-registry.json", "Where to write the built-in catalog")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateRegistry(*registryPath); err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Registry validation passed.")

	case "export":
		exportCmd.Parse(os.Args[2:])
		if err := exportRegistry(*exportPath); err != nil {
			fmt.Printf("Export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote catalog to %s\n", *exportPath)

	case "list":
		listOperations()

	case "counts":
		if err := featureCounts(); err != nil {
			fmt.Printf("Feature counts failed: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func loadCatalog(path string) (*registry.OperationRegistry, error) {
	if path == "" {
		return registry.Default(), nil
	}
	return registry.LoadRegistry(path)
}

func validateRegistry(path string) error {
	reg, err := loadCatalog(path)
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}

	seen := map[string]bool{}
	for _, op := range reg.Operations {
		if op.Op == "" {
			return fmt.Errorf("operation with empty op name")
		}
		if seen[op.Op] {
			return fmt.Errorf("duplicate operation %s", op.Op)
		}
		seen[op.Op] = true

		switch op.Executor {
		case models.SourceLLM, models.SourcePOIsDB, models.SourceEngine, models.SourceRoutingAPI:
		default:
			return fmt.Errorf("operation %s has unknown executor %q", op.Op, op.Executor)
		}
	}

	// Every registered plan builder must emit steps the catalog accepts.
	validator := validation.NewPlanValidator(reg)
	analysis := sampleAnalysis()
	for _, feature := range models.AllFeatures {
		plan := decompose.Get(feature)(analysis)
		if notes := validator.Validate(plan); len(notes) > 0 {
			return fmt.Errorf("plan for %s rejected: %v", feature, notes)
		}
		fmt.Printf("  %-40s %d steps ok\n", feature, len(plan.Steps))
	}
	return nil
}

// sampleAnalysis runs the real extractor so every field carries the shape
// the builders expect. Hand-built records leave maps and slices nil, which
// marshal to JSON null and fail the catalog's object/array schemas.
func sampleAnalysis() *models.QueryAnalysis {
	return analysis.Analyze("plan my 3 days trip to the jaipur fort under ₹8,000 in the morning")
}

func exportRegistry(path string) error {
	data, err := json.MarshalIndent(registry.Default(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// featureCounts reports how many routed queries each feature has received,
// from the audit table the route-query worker writes.
func featureCounts() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	counts, err := database.NewQueryLog(pg.DB).FeatureCounts(ctx)
	if err != nil {
		return err
	}

	features := make([]string, 0, len(counts))
	for f := range counts {
		features = append(features, f)
	}
	sort.Strings(features)

	for _, f := range features {
		fmt.Printf("  %-40s %d\n", f, counts[f])
	}
	return nil
}

func listOperations() {
	reg := registry.Default()
	fmt.Printf("Catalog version %s (%d operations)\n", reg.Version, len(reg.Operations))
	for _, op := range reg.Operations {
		fmt.Printf("  %-32s %-12s %s\n", op.Op, op.Executor, op.Description)
	}
}

func help() {
	fmt.Println(`Usage: registry-validator <command> [flags]

Commands:
  validate   Check the operation catalog and every registered plan against it
  export     Write the built-in catalog to a JSON file
  list       Print all catalog operations
  counts     Print routed-query counts per feature from the audit table
  help       Show this message`)
}

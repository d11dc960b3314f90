package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/hexfoundry/planroom/pkg/analytics"
	"github.com/hexfoundry/planroom/pkg/export"
	"github.com/hexfoundry/planroom/pkg/ingest"
	"github.com/hexfoundry/planroom/pkg/layout"
	"github.com/hexfoundry/planroom/pkg/plan"
	"github.com/hexfoundry/planroom/pkg/validation"
	"github.com/hexfoundry/planroom/pkg/zone"
)

type solveOptions struct {
	algorithm string
	seed      int64
	outJSON   string
	outPDF    string
	outXLSX   string
}

type exportOptions struct {
	projectPath string
	outPDF      string
	outXLSX     string
}

// loadAndCheck loads the project and runs input validation.
func loadAndCheck(projectPath string) (*plan.Project, *validation.Report, error) {
	project, err := plan.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading project: %w", err)
	}
	return project, project.Check(), nil
}

// effectiveProfile applies the stock defaults the engine itself does not
// assume: the three-bucket mix when the project names none, and the
// standard corridor width when it is unset.
func effectiveProfile(p plan.Profile) plan.Profile {
	if p.CorridorWidth == 0 {
		p.CorridorWidth = 1.5
	}
	if len(p.SizeDistribution) == 0 {
		p.SizeDistribution = plan.DefaultSizeDistribution()
	}
	return p
}

func runValidate(projectPath string) error {
	_, report, err := loadAndCheck(projectPath)
	if err != nil {
		return err
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runSolve(ctx context.Context, projectPath string, opts solveOptions) error {
	project, report, err := loadAndCheck(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("project has validation errors")
	}

	profile := effectiveProfile(project.Profile)
	zones := zone.Classify(project.Zones)

	algorithm := opts.algorithm
	if algorithm == "" {
		algorithm = project.Algorithm
	}

	res, err := layout.Generate(ctx, project.Floor, profile, zones, layout.Options{
		Algorithm: plan.ParseAlgorithm(algorithm),
		Seed:      opts.seed,
		Logger:    log.Default(),
	})
	if err != nil {
		return err
	}

	stats, statsReport := analytics.Summarize(res, project.Floor, profile, zones)
	report.Merge(statsReport)
	report.Merge(layout.Verify(res, project.Floor, zones))

	if opts.outPDF != "" {
		if err := export.WritePDF(opts.outPDF, res, project.Floor, zones, stats); err != nil {
			return fmt.Errorf("writing pdf: %w", err)
		}
	}
	if opts.outXLSX != "" {
		if err := export.WriteXLSX(opts.outXLSX, res, stats); err != nil {
			return fmt.Errorf("writing xlsx: %w", err)
		}
	}
	if opts.outJSON != "" {
		if err := export.WriteJSON(opts.outJSON, res); err != nil {
			return err
		}
		printResultSummary(res, stats)
		return nil
	}

	output := map[string]any{
		"layout":     res,
		"stats":      stats,
		"validation": report,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func runImport(drawingPath, outProject string) error {
	dr, err := ingest.ReadDXF(drawingPath)
	if err != nil {
		return err
	}

	printDrawingSummary(dr)

	if outProject == "" {
		return nil
	}

	project := plan.Project{
		Name:  "imported",
		Floor: dr.Floor,
		Zones: dr.Walls,
	}
	data, err := yaml.Marshal(&project)
	if err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}
	if err := os.WriteFile(outProject, data, 0o644); err != nil {
		return fmt.Errorf("writing project: %w", err)
	}
	fmt.Printf("Wrote %s\n", outProject)
	return nil
}

func runExport(resultPath string, opts exportOptions) error {
	if opts.outPDF == "" && opts.outXLSX == "" {
		return fmt.Errorf("nothing to do: pass --pdf and/or --xlsx")
	}

	res, err := export.ReadJSON(resultPath)
	if err != nil {
		return err
	}

	project, report, err := loadAndCheck(opts.projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("project has validation errors")
	}

	profile := effectiveProfile(project.Profile)
	zones := zone.Classify(project.Zones)
	stats, _ := analytics.Summarize(res, project.Floor, profile, zones)

	if opts.outPDF != "" {
		if err := export.WritePDF(opts.outPDF, res, project.Floor, zones, stats); err != nil {
			return fmt.Errorf("writing pdf: %w", err)
		}
		fmt.Printf("Wrote %s\n", opts.outPDF)
	}
	if opts.outXLSX != "" {
		if err := export.WriteXLSX(opts.outXLSX, res, stats); err != nil {
			return fmt.Errorf("writing xlsx: %w", err)
		}
		fmt.Printf("Wrote %s\n", opts.outXLSX)
	}
	return nil
}

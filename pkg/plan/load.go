package plan

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hexfoundry/planroom/pkg/validation"
	"github.com/hexfoundry/planroom/pkg/zone"
)

// Project bundles everything one generation run needs: the floor, the unit
// profile, and the zone annotations derived from the source drawing.
type Project struct {
	Name      string            `yaml:"name" json:"name"`
	Floor     Floor             `yaml:"floor" json:"floor"`
	Profile   Profile           `yaml:"profile" json:"profile"`
	Zones     []zone.Annotation `yaml:"zones" json:"zones"`
	Algorithm string            `yaml:"algorithm,omitempty" json:"algorithm,omitempty"`
}

// Load reads a project from a YAML file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing plan YAML: %w", err)
	}

	return &p, nil
}

// LoadProject loads a project from a directory. It looks for plan.yaml in
// the given directory.
func LoadProject(projectDir string) (*Project, error) {
	return Load(filepath.Join(projectDir, "plan.yaml"))
}

// Check runs input validation over the project and reports findings without
// failing fast. Hard errors here are exactly the conditions Generate would
// reject.
func (p *Project) Check() *validation.Report {
	r := validation.NewReport()

	if err := p.Floor.Validate(); err != nil {
		r.AddError(validation.Result{
			Level:       validation.LevelInput,
			Message:     err.Error(),
			Path:        "floor",
			ActualValue: fmt.Sprintf("%g x %g", p.Floor.Width, p.Floor.Height),
			Expected:    "width > 0 and height > 0",
		})
	}
	if err := p.Profile.Validate(); err != nil {
		r.AddError(validation.Result{
			Level:   validation.LevelInput,
			Message: err.Error(),
			Path:    "profile",
		})
	}

	if len(p.Profile.SizeDistribution) == 0 {
		r.AddWarning(validation.Result{
			Level:    validation.LevelInput,
			Message:  "profile has no size distribution; generation will produce an empty layout unless a default is injected",
			Path:     "profile.size_distribution",
			Expected: "at least one size bucket",
		})
	} else {
		total := 0.0
		for _, b := range p.Profile.SizeDistribution {
			total += b.Percentage
		}
		if total != 100 {
			r.AddInfo(validation.Result{
				Level:       validation.LevelInput,
				Message:     fmt.Sprintf("bucket percentages sum to %g, not 100; per-bucket counts are taken at face value", total),
				Path:        "profile.size_distribution",
				ActualValue: total,
			})
		}
	}

	skipped := 0
	for _, a := range p.Zones {
		if _, ok := a.BoundingRect(); !ok {
			skipped++
		}
	}
	if skipped > 0 {
		r.AddWarning(validation.Result{
			Level:       validation.LevelInput,
			Message:     fmt.Sprintf("%d zone annotations have fewer than 4 points and will be ignored", skipped),
			Path:        "zones",
			ActualValue: skipped,
		})
	}

	return r
}

package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/boxing-sim/boxing-sim/sim"
)

// RefereeSpec is the YAML referee definition.
type RefereeSpec struct {
	Name              string  `yaml:"name"`
	ClinchTolerance   float64 `yaml:"clinch_tolerance_secs"`
	StoppageThreshold float64 `yaml:"stoppage_threshold"`
	Protectiveness    float64 `yaml:"protectiveness"`
	FoulStrictness    float64 `yaml:"foul_strictness"`
	Experience        float64 `yaml:"experience"`
}

// JudgeSpec is the YAML judge definition.
type JudgeSpec struct {
	Name        string  `yaml:"name"`
	Profile     string  `yaml:"profile"`
	Consistency float64 `yaml:"consistency"`
}

// Officials is the YAML officials assignment: one referee and exactly three
// judges.
type Officials struct {
	Referee RefereeSpec `yaml:"referee"`
	Judges  []JudgeSpec `yaml:"judges"`
}

// Build validates the specs into live officials.
func (o Officials) Build() (*sim.Referee, []*sim.Judge, error) {
	ref, err := sim.NewReferee(o.Referee.Name, o.Referee.ClinchTolerance, o.Referee.StoppageThreshold,
		o.Referee.Protectiveness, o.Referee.FoulStrictness, o.Referee.Experience)
	if err != nil {
		return nil, nil, err
	}
	var judges []*sim.Judge
	for _, spec := range o.Judges {
		j, err := sim.NewJudge(spec.Name, spec.Profile, spec.Consistency)
		if err != nil {
			return nil, nil, err
		}
		judges = append(judges, j)
	}
	return ref, judges, nil
}

// loadOfficials reads an officials file, or returns the built-in crew for an
// empty path.
func loadOfficials(path string) (Officials, error) {
	if path == "" {
		return defaultOfficials(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Officials{}, err
	}
	var o Officials
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Officials{}, fmt.Errorf("parse officials %s: %w", path, err)
	}
	return o, nil
}

func defaultOfficials() Officials {
	return Officials{
		Referee: RefereeSpec{
			Name:              "Tony Marks",
			ClinchTolerance:   4,
			StoppageThreshold: 6.5,
			Protectiveness:    0.5,
			FoulStrictness:    0.6,
			Experience:        85,
		},
		Judges: []JudgeSpec{
			{Name: "Ada Chen", Profile: "balanced", Consistency: 0.9},
			{Name: "Luis Ortega", Profile: "aggression", Consistency: 0.8},
			{Name: "Marie Dubois", Profile: "technical", Consistency: 0.85},
		},
	}
}

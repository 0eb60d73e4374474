package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlVariable mirrors one variable entry in a YAML request document.
type yamlVariable struct {
	Minimum  float64 `yaml:"minimum"`
	Interval float64 `yaml:"interval"`
	Type     string  `yaml:"type"`
}

// yamlAC mirrors the `ac` block of a strong RK YAML request.
type yamlAC struct {
	NSimulations      int            `yaml:"nsimulations"`
	NClimbings        int            `yaml:"nclimbings"`
	NIterations       int            `yaml:"niterations"`
	ConvergenceFactor float64        `yaml:"convergence-factor"`
	ClimbingFactor    float64        `yaml:"climbing-factor"`
	Variables         []yamlVariable `yaml:"variables"`
}

// yamlDocument mirrors the whole YAML request document: the same
// attribute set the XML document carries (spec.md §6), just typed and
// nested instead of flattened into string attributes.
type yamlDocument struct {
	Family string `yaml:"family"`

	Steps             int     `yaml:"steps"`
	Order             int     `yaml:"order"`
	Strong            bool    `yaml:"strong"`
	Pair              bool    `yaml:"pair"`
	TimeAccuracy      bool    `yaml:"time-accuracy"`
	NSimulations      int     `yaml:"nsimulations"`
	NClimbings        int     `yaml:"nclimbings"`
	NIterations       int     `yaml:"niterations"`
	ConvergenceFactor float64 `yaml:"convergence-factor"`
	ClimbingFactor    float64 `yaml:"climbing-factor"`
	RNGSource         string  `yaml:"rng-source"`

	Variables []yamlVariable `yaml:"variables"`
	AC        *yamlAC        `yaml:"ac"`
}

// LoadYAML parses a YAML request document into a Request. This is an
// alternate front-end to the same Request model LoadXML produces,
// exercising gopkg.in/yaml.v3 — the teacher's own (indirect) dependency
// — rather than leaving it unwired.
func LoadYAML(r io.Reader) (*Request, error) {
	var doc yamlDocument
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigBadValue, err)
	}

	req := &Request{
		Family:            doc.Family,
		Steps:             doc.Steps,
		Order:             doc.Order,
		Strong:            doc.Strong,
		Pair:              doc.Pair,
		TimeAccuracy:      doc.TimeAccuracy,
		NSimulations:      doc.NSimulations,
		NClimbings:        doc.NClimbings,
		NIterations:       doc.NIterations,
		ConvergenceFactor: doc.ConvergenceFactor,
		ClimbingFactor:    doc.ClimbingFactor,
		RNGSource:         doc.RNGSource,
	}

	vars, err := yamlVariables(doc.Variables)
	if err != nil {
		return nil, err
	}
	req.Variables = vars

	if doc.AC != nil {
		acVars, err := yamlVariables(doc.AC.Variables)
		if err != nil {
			return nil, err
		}
		req.AC = &ACRequest{
			NSimulations:      doc.AC.NSimulations,
			NClimbings:        doc.AC.NClimbings,
			NIterations:       doc.AC.NIterations,
			ConvergenceFactor: doc.AC.ConvergenceFactor,
			ClimbingFactor:    doc.AC.ClimbingFactor,
			Variables:         acVars,
		}
	}

	if err := req.validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func yamlVariables(raw []yamlVariable) ([]Variable, error) {
	out := make([]Variable, len(raw))
	for i, v := range raw {
		rtype, err := typeFromString(v.Type)
		if err != nil {
			return nil, err
		}
		out[i] = Variable{Minimum: v.Minimum, Interval: v.Interval, Type: rtype}
	}
	return out, nil
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PipelineFile describes a pass sequence for the driver.
type PipelineFile struct {
	// Passes are pass names, in execution order.
	Passes []string `yaml:"passes"`
}

// LoadPipeline parses a YAML pipeline file.
func LoadPipeline(path string) (PipelineFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return PipelineFile{}, err
	}
	var pf PipelineFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return PipelineFile{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	if len(pf.Passes) == 0 {
		return PipelineFile{}, fmt.Errorf("%s: pipeline declares no passes", path)
	}
	seen := make(map[string]bool, len(pf.Passes))
	for _, name := range pf.Passes {
		if seen[name] {
			return PipelineFile{}, fmt.Errorf("%s: pass %q listed twice", path, name)
		}
		seen[name] = true
	}
	return pf, nil
}

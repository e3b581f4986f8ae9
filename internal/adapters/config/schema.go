package config

// Pollfile is the structure of pollwatch.yaml.
type Pollfile struct {
	Version           string   `yaml:"version"`
	Root              string   `yaml:"root"`
	PollPeriodSeconds *float64 `yaml:"pollPeriodSeconds"`
	Prune             *bool    `yaml:"prune"`
	Exclude           []string `yaml:"exclude"`
	Ignore            []string `yaml:"ignore"`
	IgnoreFile        string   `yaml:"ignoreFile"`
	Strategy          string   `yaml:"strategy"`
	ModifiedCadence   string   `yaml:"modifiedCadence"`
	Backend           string   `yaml:"backend"`
	FailureThreshold  *int     `yaml:"failureThreshold"`
	Log               LogDTO   `yaml:"log"`
}

// LogDTO is the log section of pollwatch.yaml.
type LogDTO struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

// SupportedVersion is the only schema version understood by the loader.
const SupportedVersion = "1"

var knownKeys = map[string]bool{
	"version":           true,
	"root":              true,
	"pollPeriodSeconds": true,
	"prune":             true,
	"exclude":           true,
	"ignore":            true,
	"ignoreFile":        true,
	"strategy":          true,
	"modifiedCadence":   true,
	"backend":           true,
	"failureThreshold":  true,
	"log":               true,
}

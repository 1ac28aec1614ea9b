package types

// ScanConfig bounds the heuristic search for the specialty name and the
// header row.
type ScanConfig struct {
	// Window is how many leading rows are scanned (default 10).
	Window int `json:"window" yaml:"window" mapstructure:"window"`

	// Threshold is the minimum number of keyword matches a row needs to be
	// taken as the header row (default 2).
	Threshold int `json:"threshold" yaml:"threshold" mapstructure:"threshold"`
}

// SpecialtyConfig holds settings for the specialty finder.
type SpecialtyConfig struct {
	// Sentinel is returned when no specialty cell is found (default "not found").
	Sentinel string `json:"sentinel" yaml:"sentinel" mapstructure:"sentinel"`
}

// OutputFormat selects how a PlanResult is serialized.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// LabelSet selects the attestation labels written to the output.
type LabelSet string

const (
	LabelsEnglish LabelSet = "english"
	LabelsNative  LabelSet = "native"
)

// OutputConfig holds settings for the emitter.
type OutputConfig struct {
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`
	Labels LabelSet     `json:"labels" yaml:"labels" mapstructure:"labels"`
}

// ArchiveConfig holds settings for the SQLite plan archive.
type ArchiveConfig struct {
	// Dir is the directory holding plans.db (default "archive").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// Config groups every setting curriplan reads.
type Config struct {
	Scan      ScanConfig      `json:"scan" yaml:"scan" mapstructure:"scan"`
	Specialty SpecialtyConfig `json:"specialty" yaml:"specialty" mapstructure:"specialty"`
	Output    OutputConfig    `json:"output" yaml:"output" mapstructure:"output"`
	Archive   ArchiveConfig   `json:"archive" yaml:"archive" mapstructure:"archive"`

	// SynonymsFile is an optional YAML file that extends the header
	// synonym table.
	SynonymsFile string `json:"synonyms_file,omitempty" yaml:"synonyms_file,omitempty" mapstructure:"synonyms_file"`

	// Sheet names the worksheet to read; empty means the first sheet.
	Sheet string `json:"sheet,omitempty" yaml:"sheet,omitempty" mapstructure:"sheet"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Scan:      ScanConfig{Window: 10, Threshold: 2},
		Specialty: SpecialtyConfig{Sentinel: "not found"},
		Output:    OutputConfig{Format: FormatJSON, Labels: LabelsEnglish},
		Archive:   ArchiveConfig{Dir: "archive"},
	}
}

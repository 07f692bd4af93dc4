// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LogConfig holds logger settings shared by every command.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn or error (default warn).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format selects console (human-readable) or json output (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// MergeConfig holds settings for the consolidation stage.
type MergeConfig struct {
	// SourceDirs are scanned in order for client PDFs. Enumeration order
	// within and across directories is the append order inside a category.
	SourceDirs []string `json:"source_dirs" yaml:"source_dirs" mapstructure:"source_dirs"`

	// OutputDir receives one consolidated PDF per eligible client.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// MinCategories is the number of distinct categories a client needs to
	// be merged (default 2).
	MinCategories int `json:"min_categories" yaml:"min_categories" mapstructure:"min_categories"`
}

// CleanConfig holds settings for blank-page analysis and removal.
type CleanConfig struct {
	// Dir is the folder of PDFs to scan.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// OutputDir receives cleaned copies. Empty means the originals are
	// replaced in place.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// AssumeYes skips the interactive confirmation.
	AssumeYes bool `json:"assume_yes" yaml:"assume_yes" mapstructure:"assume_yes"`
}

// ExtractConfig holds settings for field extraction from .docx case files.
type ExtractConfig struct {
	// Dir is the folder of .docx documents.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Output is the spreadsheet path for the extracted records.
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// Workers bounds the number of documents read concurrently (default 1).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// ListConfig holds settings for the filename and statement listings.
type ListConfig struct {
	// Dir is the folder to list.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// CommissionsOutput is the output file of the commission listing.
	CommissionsOutput string `json:"commissions_output" yaml:"commissions_output" mapstructure:"commissions_output"`

	// StatementsOutput is the output file of the statement listing.
	StatementsOutput string `json:"statements_output" yaml:"statements_output" mapstructure:"statements_output"`
}

// BootstrapConfig holds settings for creating client folders.
type BootstrapConfig struct {
	// Root is the directory under which client folders are created.
	Root string `json:"root" yaml:"root" mapstructure:"root"`

	// Count is the number of ClienteN folders (default 100).
	Count int `json:"count" yaml:"count" mapstructure:"count"`

	// Template is copied into each folder when it is not already present.
	Template string `json:"template" yaml:"template" mapstructure:"template"`
}

// HistoryConfig holds settings for the run history database.
type HistoryConfig struct {
	// Dir contains the history database (default ".casefile").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Disabled turns off run recording.
	Disabled bool `json:"disabled" yaml:"disabled" mapstructure:"disabled"`
}

// Config groups all stage configurations.
type Config struct {
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
	Merge     MergeConfig     `json:"merge" yaml:"merge" mapstructure:"merge"`
	Clean     CleanConfig     `json:"clean" yaml:"clean" mapstructure:"clean"`
	Extract   ExtractConfig   `json:"extract" yaml:"extract" mapstructure:"extract"`
	List      ListConfig      `json:"list" yaml:"list" mapstructure:"list"`
	Bootstrap BootstrapConfig `json:"bootstrap" yaml:"bootstrap" mapstructure:"bootstrap"`
	History   HistoryConfig   `json:"history" yaml:"history" mapstructure:"history"`
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// TargetFile is the output written by the load phase
	TargetFile = "transformed_data.csv"
	// LogFile receives one line per phase boundary
	LogFile = "log_file.txt"
)

// Config holds the locations used by a pipeline run
type Config struct {
	WorkDir    string // directory scanned for input files
	TargetFile string
	LogFile    string
}

// Default returns the fixed configuration rooted at the current working
// directory
func Default() (*Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return ForDir(dir), nil
}

// ForDir returns the fixed configuration rooted at dir
func ForDir(dir string) *Config {
	return &Config{
		WorkDir:    dir,
		TargetFile: TargetFile,
		LogFile:    LogFile,
	}
}

// TargetPath resolves the output file against the working directory
func (c *Config) TargetPath() string {
	return c.resolve(c.TargetFile)
}

// LogPath resolves the log file against the working directory
func (c *Config) LogPath() string {
	return c.resolve(c.LogFile)
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.WorkDir, name)
}

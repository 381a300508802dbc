// Package main provides the cv_header CLI: tailored CV header generation from a stitched CV,
// a structured job description and a skill whitelist.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/cv-tailor/internal/types"
)

// readJSON decodes the JSON file at path into a new T
func readJSON[T any](path, what string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file: %w", what, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s JSON: %w", what, err)
	}
	return &v, nil
}

// writeOutput writes data to path, creating parent directories. An empty path writes to stdout.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func readHeader(path string) (*types.HeaderOutput, error) {
	return readJSON[types.HeaderOutput](path, "header")
}

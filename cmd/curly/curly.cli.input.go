package main

import (
	"bytes"
	"io"
	"os"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// writeOutput writes content to stdout, or atomically replaces the file
// at path
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == OutputTargetStdout {
		_, err := stdout.Write(data)
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return err
	}
	return os.Chmod(path, FilePermissions)
}

// loadVarsFile reads a flat YAML mapping of variable names to values
func loadVarsFile(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	vars := make(map[string]any)
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, err
	}
	return vars, nil
}

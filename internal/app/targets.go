package app

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrNoTargets is returned when the merged target list is empty.
	ErrNoTargets = errors.New("no targets specified")

	// ErrReadTargetFile is returned when the target file cannot be read.
	ErrReadTargetFile = errors.New("read target file")
)

// readTargetFile returns the targets listed in path, one per line.
// Lines are trimmed; empty lines and lines starting with '#' are skipped.
func readTargetFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrReadTargetFile, path, err)
	}
	defer f.Close()

	var targets []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		targets = append(targets, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrReadTargetFile, path, err)
	}

	return targets, nil
}

// mergeTargets concatenates the targets of every source in order:
// the configuration file, the command line, then the target file.
func mergeTargets(configTargets, cliTargets []string, filePath string) ([]string, error) {
	targets := make([]string, 0, len(configTargets)+len(cliTargets))
	targets = append(targets, configTargets...)
	targets = append(targets, cliTargets...)

	if filePath != "" {
		fileTargets, err := readTargetFile(filePath)
		if err != nil {
			return nil, err
		}
		targets = append(targets, fileTargets...)
	}

	if len(targets) == 0 {
		return nil, ErrNoTargets
	}

	return targets, nil
}

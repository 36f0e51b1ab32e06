// Package cli provides shared utilities for CLI commands.
package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/portkeyhq/portkey/pkg/vault"
)

// ExpandPattern expands a glob pattern against record names. If the pattern
// contains glob characters (*?[), it performs glob matching; otherwise exact
// (case-insensitive) matching.
func ExpandPattern(pattern string, records []vault.CredentialRecord) ([]string, error) {
	// Validate pattern syntax
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern '%s': %w", pattern, err)
	}

	hasGlob := strings.ContainsAny(pattern, "*?[")

	if !hasGlob {
		lowered := strings.ToLower(pattern)
		for _, r := range records {
			if strings.ToLower(r.Name) == lowered {
				return []string{r.Name}, nil
			}
		}
		return nil, fmt.Errorf("server '%s' not found", pattern)
	}

	var matches []string
	for _, r := range records {
		matched, err := filepath.Match(pattern, r.Name)
		if err != nil {
			return nil, err
		}
		if matched {
			matches = append(matches, r.Name)
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("no servers match pattern '%s'", pattern)
	}

	return matches, nil
}

// ExpandPatterns expands multiple glob patterns against record names.
// Returns unique matching names preserving order of first match.
func ExpandPatterns(patterns []string, records []vault.CredentialRecord) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	for _, pattern := range patterns {
		matches, err := ExpandPattern(pattern, records)
		if err != nil {
			return nil, err
		}
		for _, name := range matches {
			if !seen[name] {
				seen[name] = true
				result = append(result, name)
			}
		}
	}

	return result, nil
}

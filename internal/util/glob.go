package util

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type GlobPattern struct {
	positivePatterns []string
	negativePatterns []string
}

// ParseGlobPattern parses a comma-separated list of glob patterns.
// Patterns prefixed with '!' are negations and exclude matching names.
func ParseGlobPattern(globPattern string) *GlobPattern {
	gp := &GlobPattern{}

	if globPattern == "" {
		return gp
	}

	patterns := strings.Split(globPattern, ",")
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if strings.HasPrefix(pattern, "!") {
			gp.negativePatterns = append(gp.negativePatterns, strings.TrimPrefix(pattern, "!"))
		} else {
			gp.positivePatterns = append(gp.positivePatterns, pattern)
		}
	}

	return gp
}

func (gp *GlobPattern) Match(name string) (bool, error) {
	name = filepath.ToSlash(name)

	matchesPositive := len(gp.positivePatterns) == 0
	for _, pattern := range gp.positivePatterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid glob pattern '%s': %w", pattern, err)
		}
		if matched {
			matchesPositive = true
			break
		}
	}

	if !matchesPositive {
		return false, nil
	}

	for _, pattern := range gp.negativePatterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid glob pattern '%s': %w", pattern, err)
		}
		if matched {
			return false, nil
		}
	}

	return true, nil
}

// Expand enumerates dir exactly once and returns the sorted names of regular
// files matching the pattern. Directories are never matched. The single
// enumeration avoids races with files appearing or disappearing between
// repeated directory reads.
func Expand(dir, globPattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory '%s': %w", dir, err)
	}

	gp := ParseGlobPattern(globPattern)
	var names []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matched, err := gp.Match(entry.Name())
		if err != nil {
			return nil, err
		}
		if matched {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)
	return names, nil
}

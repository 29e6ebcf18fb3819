// Package profile describes which files a language's analysis collects.
package profile

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Profile selects the files discovery hands to the analyzer.
type Profile struct {
	// Name is the identifier used on the command line (e.g., "python")
	Name string `yaml:"name"`

	// Description is shown by `ccqe config show`
	Description string `yaml:"description,omitempty"`

	// Extensions are the file suffixes to collect, including the dot
	Extensions []string `yaml:"extensions"`

	// ExcludeDirs are directory base names that are never descended into
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// ExcludePatterns are filepath.Match globs tested against file base names
	ExcludePatterns []string `yaml:"exclude_patterns,omitempty"`
}

// Validate checks that the profile can select files.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile has no name")
	}
	if len(p.Extensions) == 0 {
		return fmt.Errorf("profile %s: no extensions", p.Name)
	}
	for _, ext := range p.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("profile %s: extension %q must start with a dot", p.Name, ext)
		}
	}
	for _, pattern := range p.ExcludePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("profile %s: bad pattern %q: %w", p.Name, pattern, err)
		}
	}
	return nil
}

// MatchesFile reports whether path has one of the profile's extensions and
// is not excluded by name.
func (p *Profile) MatchesFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(p.Extensions, ext) {
		return false
	}
	base := filepath.Base(path)
	for _, pattern := range p.ExcludePatterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return false
		}
	}
	return true
}

// SkipDir reports whether a directory with the given base name is excluded.
func (p *Profile) SkipDir(name string) bool {
	return slices.Contains(p.ExcludeDirs, name)
}

package profile

import (
	"embed"
	"fmt"
	"os"
	"path"
	"sort"

	"gopkg.in/yaml.v3"
)

// Default is the profile used when none is configured.
const Default = "python"

//go:embed profiles/*.yaml
var profileFS embed.FS

// builtinProfiles maps profile names to their definitions
var builtinProfiles = map[string]*Profile{}

func init() {
	entries, err := profileFS.ReadDir("profiles")
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		data, err := profileFS.ReadFile(path.Join("profiles", entry.Name()))
		if err != nil {
			continue
		}

		p, err := decode(data)
		if err != nil {
			continue
		}
		builtinProfiles[p.Name] = p
	}
}

func decode(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load returns a builtin profile by name
func Load(name string) (*Profile, error) {
	if p, ok := builtinProfiles[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("unknown profile: %s", name)
}

// Available returns the names of all builtin profiles, sorted
func Available() []string {
	names := make([]string, 0, len(builtinProfiles))
	for name := range builtinProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFromFile reads a custom profile from a YAML file
func LoadFromFile(filename string) (*Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	p, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", filename, err)
	}
	return p, nil
}

// Resolve loads a builtin profile by name, or a custom one when nameOrPath
// refers to a YAML file.
func Resolve(nameOrPath string) (*Profile, error) {
	if nameOrPath == "" {
		nameOrPath = Default
	}
	if p, ok := builtinProfiles[nameOrPath]; ok {
		return p, nil
	}
	switch path.Ext(nameOrPath) {
	case ".yaml", ".yml":
		return LoadFromFile(nameOrPath)
	}
	return Load(nameOrPath)
}

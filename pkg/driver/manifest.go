package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"minilang/interpreter-go/pkg/runtime"
)

// ManifestFileName is the file FindManifest looks for.
const ManifestFileName = "minilang.yml"

// Manifest represents the parsed contents of minilang.yml.
type Manifest struct {
	Path        string
	Name        string
	MaxSteps    int
	Targets     map[string]*Target
	TargetOrder []string
}

// Target names one runnable program and its initial bindings.
type Target struct {
	Name   string
	Main   string
	Git    string
	Rev    string
	Inputs map[string]runtime.Binding

	rawInputs map[string]string
}

// Dir returns the directory containing the manifest.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

var (
	ErrManifestNotFound = errors.New("manifest: " + ManifestFileName + " not found")
	ErrNoTargets        = errors.New("manifest: no targets defined")
)

// FindManifest walks from start towards the filesystem root and returns the
// first minilang.yml it finds.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrManifestNotFound
		}
		dir = parent
	}
}

// LoadManifest parses minilang.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	manifest, err := decodeManifest(file, absPath)
	if err != nil {
		return nil, err
	}
	return manifest, nil
}

func decodeManifest(r io.Reader, path string) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", path)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}

	manifest := raw.toManifest(path)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.MaxSteps < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_steps must be non-negative, got %d", m.MaxSteps))
	}
	for _, name := range m.TargetOrder {
		target := m.Targets[name]
		if target.Main == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q requires a main program", name))
		}
		if target.Rev != "" && target.Git == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q sets rev without git", name))
		}
		inputNames := make([]string, 0, len(target.rawInputs))
		for input := range target.rawInputs {
			inputNames = append(inputNames, input)
		}
		sort.Strings(inputNames)
		for _, input := range inputNames {
			binding, err := ParseBinding(target.rawInputs[input])
			if err != nil {
				errs.Issues = append(errs.Issues, fmt.Sprintf("targets.%s.inputs.%s: %v", name, input, err))
				continue
			}
			target.Inputs[input] = binding
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// DefaultTarget returns the first target in manifest order.
func (m *Manifest) DefaultTarget() (*Target, error) {
	if m == nil || len(m.TargetOrder) == 0 {
		return nil, ErrNoTargets
	}
	return m.Targets[m.TargetOrder[0]], nil
}

// FindTarget looks up a target by name.
func (m *Manifest) FindTarget(name string) (*Target, bool) {
	if m == nil {
		return nil, false
	}
	target, ok := m.Targets[strings.TrimSpace(name)]
	return target, ok
}

type manifestFile struct {
	Name     string    `yaml:"name"`
	MaxSteps int       `yaml:"max_steps"`
	Targets  targetMap `yaml:"targets"`
}

type targetYAML struct {
	Main   string            `yaml:"main"`
	Git    string            `yaml:"git"`
	Rev    string            `yaml:"rev"`
	Inputs map[string]string `yaml:"inputs"`
}

var targetFields = map[string]bool{"main": true, "git": true, "rev": true, "inputs": true}

type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	fields *targetYAML
}

// UnmarshalYAML keeps targets in document order. Node.Decode does not
// inherit KnownFields, so target keys are checked here.
func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	seen := make(map[string]struct{}, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: targets must not use empty keys")
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("manifest: target %q defined twice", key)
		}
		seen[key] = struct{}{}
		if valueNode.Kind != yaml.MappingNode {
			return fmt.Errorf("manifest: target %q must be a mapping", key)
		}
		for j := 0; j < len(valueNode.Content); j += 2 {
			field := valueNode.Content[j].Value
			if !targetFields[field] {
				return fmt.Errorf("manifest: target %q: line %d: unknown field %q", key, valueNode.Content[j].Line, field)
			}
		}
		entry := new(targetYAML)
		if err := valueNode.Decode(entry); err != nil {
			return fmt.Errorf("manifest: target %q: %w", key, err)
		}
		items = append(items, targetMapEntry{name: key, fields: entry})
	}
	tm.items = items
	return nil
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:        path,
		Name:        strings.TrimSpace(mf.Name),
		MaxSteps:    mf.MaxSteps,
		Targets:     make(map[string]*Target, len(mf.Targets.items)),
		TargetOrder: make([]string, 0, len(mf.Targets.items)),
	}
	for _, item := range mf.Targets.items {
		raw := make(map[string]string, len(item.fields.Inputs))
		for name, value := range item.fields.Inputs {
			raw[strings.TrimSpace(name)] = strings.TrimSpace(value)
		}
		result.Targets[item.name] = &Target{
			Name:      item.name,
			Main:      strings.TrimSpace(item.fields.Main),
			Git:       strings.TrimSpace(item.fields.Git),
			Rev:       strings.TrimSpace(item.fields.Rev),
			Inputs:    make(map[string]runtime.Binding, len(raw)),
			rawInputs: raw,
		}
		result.TargetOrder = append(result.TargetOrder, item.name)
	}
	return result
}

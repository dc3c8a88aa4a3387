// Package config provides settings and the task manifest loader for taskspec.
package config

import (
	"encoding/hex"
	"os"
	"strconv"
	"strings"

	"go.trai.ch/taskspec/internal/core/domain"
	"go.trai.ch/taskspec/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileManifestLoader implements ports.ManifestLoader using YAML files.
type FileManifestLoader struct {
	logger ports.Logger
}

// NewLoader creates a manifest loader that reports through the given logger.
func NewLoader(logger ports.Logger) *FileManifestLoader {
	return &FileManifestLoader{logger: logger}
}

// Load reads the manifest at path.
func (l *FileManifestLoader) Load(path string) (*domain.Manifest, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	if l.logger != nil {
		l.logger.Info("loaded manifest " + path + " with " + strconv.Itoa(len(m.Tasks)) + " tasks")
	}
	return m, nil
}

// Load reads a manifest file from the given path and returns a domain.Manifest.
func Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest file"), "path", path)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return m, nil
}

// Parse decodes manifest YAML and validates names and references.
func Parse(data []byte) (*domain.Manifest, error) {
	var file ManifestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse manifest file")
	}

	m := &domain.Manifest{
		Counter: file.Counter,
		Tasks:   make([]domain.TaskDef, 0, len(file.Tasks)),
	}
	if file.Parent != "" {
		parent, err := domain.ParseID[domain.TaskID](file.Parent)
		if err != nil {
			return nil, zerr.With(err, "field", "parent")
		}
		m.Parent = parent
	}
	if m.Counter < 0 {
		return nil, zerr.With(domain.ErrInvalidCount, "counter", m.Counter)
	}

	// Returns declared so far; references may only point backwards.
	declared := make(map[string]int64, len(file.Tasks))

	for _, dto := range file.Tasks {
		if dto.Name == "" {
			return nil, zerr.New("task name is required")
		}
		if _, dup := declared[dto.Name]; dup {
			return nil, zerr.With(domain.ErrDuplicateTaskName, "task_name", dto.Name)
		}
		if dto.Function == "" {
			return nil, zerr.With(zerr.New("task function is required"), "task_name", dto.Name)
		}
		if dto.Returns < 0 {
			return nil, zerr.With(zerr.With(domain.ErrInvalidCount, "returns", dto.Returns), "task_name", dto.Name)
		}

		def := domain.TaskDef{
			Name:     dto.Name,
			Function: dto.Function,
			Returns:  dto.Returns,
			Args:     make([]domain.ArgDef, 0, len(dto.Args)),
		}
		for i, a := range dto.Args {
			arg, err := convertArg(a, declared)
			if err != nil {
				return nil, zerr.With(zerr.With(err, "arg_index", i), "task_name", dto.Name)
			}
			def.Args = append(def.Args, arg)
		}

		declared[dto.Name] = dto.Returns
		m.Tasks = append(m.Tasks, def)
	}

	return m, nil
}

func convertArg(a ArgDTO, declared map[string]int64) (domain.ArgDef, error) {
	set := 0
	for _, f := range []*string{a.Value, a.Hex, a.Object, a.Ref} {
		if f != nil {
			set++
		}
	}
	if set != 1 {
		return domain.ArgDef{}, zerr.With(domain.ErrInvalidArg, "fields_set", set)
	}

	switch {
	case a.Value != nil:
		return domain.ArgDef{Kind: domain.ArgByVal, Value: []byte(*a.Value)}, nil
	case a.Hex != nil:
		b, err := hex.DecodeString(*a.Hex)
		if err != nil {
			return domain.ArgDef{}, zerr.With(zerr.Wrap(err, "invalid hex value"), "hex", *a.Hex)
		}
		return domain.ArgDef{Kind: domain.ArgByVal, Value: b}, nil
	case a.Object != nil:
		id, err := domain.ParseID[domain.ObjectID](*a.Object)
		if err != nil {
			return domain.ArgDef{}, err
		}
		return domain.ArgDef{Kind: domain.ArgByRef, Object: id}, nil
	default:
		r, err := parseRef(*a.Ref)
		if err != nil {
			return domain.ArgDef{}, err
		}
		returns, ok := declared[r.Task]
		if !ok || r.Index >= returns {
			return domain.ArgDef{}, zerr.With(domain.ErrUnknownTaskRef, "ref", *a.Ref)
		}
		return domain.ArgDef{Kind: domain.ArgByRef, Ref: r}, nil
	}
}

// parseRef splits "task.index" on the last dot so task names may contain dots.
func parseRef(s string) (*domain.ReturnRef, error) {
	dot := strings.LastIndexByte(s, '.')
	if dot <= 0 || dot == len(s)-1 {
		return nil, zerr.With(domain.ErrInvalidArg, "ref", s)
	}
	idx, err := strconv.ParseInt(s[dot+1:], 10, 64)
	if err != nil || idx < 0 {
		return nil, zerr.With(domain.ErrInvalidArg, "ref", s)
	}
	return &domain.ReturnRef{Task: s[:dot], Index: idx}, nil
}

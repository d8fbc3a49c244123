// Package manifest reads and writes symbol manifests: YAML documents listing
// classes and their members. Any tool that can describe a code base this way
// can feed the report.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cmmoran/doctracer/internal/docblock"
	"github.com/cmmoran/doctracer/internal/model"
)

const Version = 1

// Param is one method parameter.
type Param struct {
	Name           string    `yaml:"name" json:"name"`
	Type           string    `yaml:"type,omitempty" json:"type,omitempty"`
	Default        yaml.Node `yaml:"default,omitempty" json:"-"`
	DefaultPrinted string    `yaml:"default_printed,omitempty" json:"default_printed,omitempty"`
	Variadic       bool      `yaml:"variadic,omitempty" json:"variadic,omitempty"`
	ByRef          bool      `yaml:"by_ref,omitempty" json:"by_ref,omitempty"`
}

// Member is a constant, property or method.
type Member struct {
	Name           string    `yaml:"name" json:"name"`
	Modifiers      []string  `yaml:"modifiers,omitempty" json:"modifiers,omitempty"`
	Type           string    `yaml:"type,omitempty" json:"type,omitempty"`
	Default        yaml.Node `yaml:"default,omitempty" json:"-"`
	DefaultPrinted string    `yaml:"default_printed,omitempty" json:"default_printed,omitempty"`
	Doc            string    `yaml:"doc,omitempty" json:"doc,omitempty"`
	Params         []Param   `yaml:"params,omitempty" json:"params,omitempty"`
	Line           int       `yaml:"line,omitempty" json:"line,omitempty"`
}

// Class is one class, trait or interface.
type Class struct {
	Namespace  string   `yaml:"namespace" json:"namespace"`
	Name       string   `yaml:"name" json:"name"`
	FullName   string   `yaml:"full_name,omitempty" json:"full_name,omitempty"`
	File       string   `yaml:"file,omitempty" json:"file,omitempty"`
	Kind       string   `yaml:"kind,omitempty" json:"kind,omitempty"`
	Modifiers  []string `yaml:"modifiers,omitempty" json:"modifiers,omitempty"`
	Parent     string   `yaml:"parent,omitempty" json:"parent,omitempty"`
	Interfaces []string `yaml:"interfaces,omitempty" json:"interfaces,omitempty"`
	Doc        string   `yaml:"doc,omitempty" json:"doc,omitempty"`
	Constants  []Member `yaml:"constants,omitempty" json:"constants,omitempty"`
	Properties []Member `yaml:"properties,omitempty" json:"properties,omitempty"`
	Methods    []Member `yaml:"methods,omitempty" json:"methods,omitempty"`
}

// Manifest is a serialized catalog.
type Manifest struct {
	Version int     `yaml:"version" json:"version"`
	Classes []Class `yaml:"classes" json:"classes"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{Version: Version}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes a manifest document.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if m.Version == 0 {
		m.Version = Version
	}
	if m.Version > Version {
		return nil, fmt.Errorf("unsupported manifest version %d", m.Version)
	}
	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}
	var buf bytes.Buffer
	if err := m.Write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Write encodes the manifest to w.
func (m *Manifest) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return enc.Close()
}

// FromRecords builds a manifest from records. Defaults are stored in their
// printed form; docblocks as their raw comments.
func FromRecords(records []*model.ClassRecord) *Manifest {
	m := &Manifest{Version: Version, Classes: make([]Class, 0, len(records))}
	for _, r := range records {
		if r == nil {
			continue
		}
		m.Classes = append(m.Classes, Class{
			Namespace:  r.Namespace,
			Name:       r.Name,
			FullName:   r.FullName,
			File:       r.File,
			Kind:       r.Kind.String(),
			Modifiers:  r.Modifiers,
			Parent:     r.Parent,
			Interfaces: r.Interfaces,
			Doc:        r.DocComment,
			Constants:  fromMembers(r.Constants),
			Properties: fromMembers(r.Properties),
			Methods:    fromMembers(r.Methods),
		})
	}
	return m
}

func fromMembers(ms []*model.MemberRecord) []Member {
	if len(ms) == 0 {
		return nil
	}
	out := make([]Member, 0, len(ms))
	for _, mr := range ms {
		m := Member{
			Name:           mr.Name,
			Modifiers:      mr.Modifiers,
			Type:           mr.Type,
			DefaultPrinted: mr.Default,
			Doc:            mr.DocComment,
			Line:           mr.Line,
		}
		for _, p := range mr.Params {
			m.Params = append(m.Params, Param{
				Name:           p.Name,
				Type:           p.Type,
				DefaultPrinted: p.Default,
				Variadic:       p.Variadic,
				ByRef:          p.ByRef,
			})
		}
		out = append(out, m)
	}
	return out
}

// Records converts the manifest into class records, parsing every docblock.
func (m *Manifest) Records() ([]*model.ClassRecord, error) {
	out := make([]*model.ClassRecord, 0, len(m.Classes))
	for i, c := range m.Classes {
		if c.Name == "" {
			return nil, fmt.Errorf("class %d: missing name", i)
		}
		kind, err := model.ParseSymbolKind(c.Kind)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", c.Name, err)
		}
		r := &model.ClassRecord{
			Name:       c.Name,
			FullName:   c.FullName,
			Namespace:  c.Namespace,
			File:       c.File,
			Kind:       kind,
			Modifiers:  c.Modifiers,
			Parent:     c.Parent,
			Interfaces: c.Interfaces,
			DocComment: c.Doc,
			Doc:        docblock.Parse(c.Doc),
		}
		if r.FullName == "" {
			r.FullName = c.Name
			if c.Namespace != "" {
				r.FullName = c.Namespace + `\` + c.Name
			}
		}
		if r.Constants, err = toMembers(model.MemberConstant, c.Constants); err != nil {
			return nil, fmt.Errorf("class %s: %w", r.FullName, err)
		}
		if r.Properties, err = toMembers(model.MemberProperty, c.Properties); err != nil {
			return nil, fmt.Errorf("class %s: %w", r.FullName, err)
		}
		if r.Methods, err = toMembers(model.MemberMethod, c.Methods); err != nil {
			return nil, fmt.Errorf("class %s: %w", r.FullName, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func toMembers(kind model.MemberKind, ms []Member) ([]*model.MemberRecord, error) {
	if len(ms) == 0 {
		return nil, nil
	}
	out := make([]*model.MemberRecord, 0, len(ms))
	for _, m := range ms {
		if m.Name == "" {
			return nil, fmt.Errorf("%s without name", kind)
		}
		def, err := printedDefault(m.DefaultPrinted, &m.Default)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", kind, m.Name, err)
		}
		mr := &model.MemberRecord{
			Kind:       kind,
			Name:       m.Name,
			Modifiers:  m.Modifiers,
			Type:       model.NormalizeType(m.Type),
			Default:    def,
			DocComment: m.Doc,
			Doc:        docblock.Parse(m.Doc),
			Line:       m.Line,
		}
		for _, p := range m.Params {
			def, err := printedDefault(p.DefaultPrinted, &p.Default)
			if err != nil {
				return nil, fmt.Errorf("%s %s param %s: %w", kind, m.Name, p.Name, err)
			}
			mr.Params = append(mr.Params, model.ParamRecord{
				Name:     p.Name,
				Type:     model.NormalizeType(p.Type),
				Default:  def,
				Variadic: p.Variadic,
				ByRef:    p.ByRef,
			})
		}
		out = append(out, mr)
	}
	return out, nil
}

// printedDefault prefers the printed form. A raw default is printed with
// model.PrintValue; an explicit null prints as "null" and an absent default
// as "".
func printedDefault(printed string, raw *yaml.Node) (string, error) {
	if printed != "" {
		return printed, nil
	}
	if raw == nil || raw.Kind == 0 {
		return "", nil
	}
	var v any
	if err := raw.Decode(&v); err != nil {
		return "", fmt.Errorf("decode default: %w", err)
	}
	return model.PrintValue(v), nil
}

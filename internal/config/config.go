// Package config loads layout description files for the fieldref CLI.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/wippyai/fieldref/errors"
	"github.com/wippyai/fieldref/layout"
)

// SupportedVersions is the constraint a file's version must satisfy.
const SupportedVersions = "^1"

type Field struct {
	Name  string `toml:"name"`
	Type  string `toml:"type"`
	Size  uint64 `toml:"size"`
	Align uint64 `toml:"align"`
}

type Layout struct {
	Name   string  `toml:"name"`
	Fields []Field `toml:"fields"`
}

type File struct {
	Version string   `toml:"version"`
	Layouts []Layout `toml:"layouts"`
}

// Load reads and validates the file at path.
func Load(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "load "+path)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Parse decodes and validates a document held in memory.
func Parse(data string) (*File, error) {
	var f File
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "decode layout file")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) Validate() error {
	if strings.TrimSpace(f.Version) == "" {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("version").
			Detail("version is required").
			Build()
	}
	v, err := semver.NewVersion(strings.TrimSpace(f.Version))
	if err != nil {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("version").
			Value(f.Version).
			Cause(err).
			Detail("parse version").
			Build()
	}
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("constraint %q: %w", SupportedVersions, err)
	}
	if !c.Check(v) {
		return errors.New(errors.PhaseConfig, errors.KindUnsupported).
			Path("version").
			Value(f.Version).
			Detail("version %s does not satisfy %s", v, SupportedVersions).
			Build()
	}

	seen := make(map[string]bool, len(f.Layouts))
	for i, l := range f.Layouts {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Path("layouts", strconv.Itoa(i), "name").
				Detail("layout name is required").
				Build()
		}
		if seen[name] {
			return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Path("layouts", name).
				Detail("duplicate layout").
				Build()
		}
		seen[name] = true

		if _, err := l.Signature(); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the layout called name.
func (f *File) Lookup(name string) (Layout, bool) {
	for _, l := range f.Layouts {
		if strings.TrimSpace(l.Name) == name {
			return l, true
		}
	}
	return Layout{}, false
}

// Names lists layout names in file order.
func (f *File) Names() []string {
	out := make([]string, len(f.Layouts))
	for i, l := range f.Layouts {
		out[i] = strings.TrimSpace(l.Name)
	}
	return out
}

// Signature converts the field list into a layout signature.
func (l Layout) Signature() (layout.Signature, error) {
	sig := make(layout.Signature, len(l.Fields))
	for i, f := range l.Fields {
		d, err := f.descriptor()
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				e.Path = []string{"layouts", l.Name, fieldName(f, i)}
			}
			return nil, err
		}
		sig[i] = d
	}
	return sig, nil
}

func (f Field) descriptor() (layout.Descriptor, error) {
	k, ok := layout.ParseKind(strings.TrimSpace(f.Type))
	if !ok {
		return layout.Descriptor{}, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Value(f.Type).
			Detail("unknown field type %q", f.Type).
			Build()
	}

	if k == layout.KindBytes {
		if f.Size > uint64(layout.MaxSize) || f.Align > uint64(layout.MaxSize) {
			return layout.Descriptor{}, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Value(f.Size).
				Detail("bytes field exceeds %d bytes", layout.MaxSize).
				Build()
		}
		d := layout.Bytes(uintptr(f.Size), uintptr(f.Align))
		if err := d.Validate(); err != nil {
			return layout.Descriptor{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "bytes field")
		}
		return d, nil
	}

	if f.Size != 0 || f.Align != 0 {
		return layout.Descriptor{}, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Detail("size and align apply to bytes fields only").
			Build()
	}
	d, ok := layout.ForKind(k)
	if !ok {
		return layout.Descriptor{}, errors.New(errors.PhaseConfig, errors.KindUnsupported).
			Value(f.Type).
			Detail("%s has no fixed layout, describe it as bytes", k).
			Build()
	}
	return d, nil
}

func fieldName(f Field, i int) string {
	if n := strings.TrimSpace(f.Name); n != "" {
		return n
	}
	return strconv.Itoa(i)
}

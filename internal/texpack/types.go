// Package texpack stores generated textures in a single SQLite file, one row
// per texture, so a batch of flipbooks and noise maps can be shipped and
// inspected together.
package texpack

import (
	"errors"
	"strconv"
)

// ErrNotFound is returned when a texture name is not in the pack.
var ErrNotFound = errors.New("texture not found")

// Metadata contains pack-level key/value fields.
type Metadata struct {
	Name        string // Human-readable pack name
	Description string
	Generator   string // Tool that wrote the pack
	Version     string
	Count       int // Number of textures, filled in by Reader.Metadata
}

// ToMap converts Metadata to a map for database insertion. Empty fields are
// left out so re-opening a pack does not clear them.
func (m Metadata) ToMap() map[string]string {
	result := make(map[string]string)

	if m.Name != "" {
		result["name"] = m.Name
	}
	if m.Description != "" {
		result["description"] = m.Description
	}
	if m.Generator != "" {
		result["generator"] = m.Generator
	}
	if m.Version != "" {
		result["version"] = m.Version
	}

	return result
}

// Entry is one stored texture.
type Entry struct {
	Name   string // Unique key, usually the PNG file name
	Kind   string // noise, sprite, ramp, flipbook or volume
	Width  int
	Height int
	Cols   int // Atlas columns, 1 for single images
	Rows   int
	Seed   int64
	Params string // JSON encoded generation parameters
	Data   []byte // PNG bytes; nil in List results
}

// Frames is the number of atlas cells.
func (e Entry) Frames() int { return e.Cols * e.Rows }

func (e Entry) String() string {
	return e.Name + " (" + e.Kind + " " + strconv.Itoa(e.Width) + "x" + strconv.Itoa(e.Height) + ")"
}

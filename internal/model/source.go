// Package model defines the data structures shared by discovery and reporting.
package model

import "path/filepath"

// Path represents a file system path.
type Path string

// String returns the path as a plain string.
func (p Path) String() string {
	return string(p)
}

// Join appends elements to the path using the OS separator.
func (p Path) Join(elem ...string) Path {
	return Path(filepath.Join(append([]string{string(p)}, elem...)...))
}

// SourceSet is one named group of source roots and the files resolved under them.
//
// Field order is the JSON key order of the report and must not change.
type SourceSet struct {
	Name        string   `json:"sourceSetName" yaml:"sourceSetName"`
	Directories []string `json:"sourceDirectories" yaml:"sourceDirectories"`
	Files       []string `json:"files" yaml:"files"`
}

// Equal reports whether both source sets carry the same name, roots and files
// in the same order.
func (s SourceSet) Equal(other SourceSet) bool {
	return s.Name == other.Name &&
		equalStrings(s.Directories, other.Directories) &&
		equalStrings(s.Files, other.Files)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

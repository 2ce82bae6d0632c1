/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package manifest

import (
	"encoding/json"
	"fmt"
	"sort"
)

// DefaultRetainedVersions is how many firmware versions the
// housekeeping keeps available for download
const DefaultRetainedVersions = 3

// Version is one retained firmware build
type Version struct {
	Version   string `json:"version"`
	Path      string `json:"path"`
	Size      uint32 `json:"size"`
	Timestamp int64  `json:"timestamp"`
}

// Manifest lists the retained firmware versions of a project, newest
// first
type Manifest struct {
	Project  string    `json:"project"`
	Versions []Version `json:"versions"`
}

// NewManifest parses a manifest document. The versions list is sorted
// newest first regardless of the order it was stored in.
func NewManifest(data []byte) (*Manifest, error) {
	m := &Manifest{}

	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}

	if m.Project == "" {
		return nil, fmt.Errorf("manifest has no project name")
	}

	sort.SliceStable(m.Versions, func(i, j int) bool {
		return m.Versions[i].Timestamp > m.Versions[j].Timestamp
	})

	return m, nil
}

// Latest returns the newest retained version, or nil for an empty
// manifest
func (m *Manifest) Latest() *Version {
	if len(m.Versions) == 0 {
		return nil
	}

	return &m.Versions[0]
}

// Prune drops the oldest versions until at most max remain, returning
// the dropped entries so the caller can delete their image files
func (m *Manifest) Prune(max int) []Version {
	if max < 0 {
		max = 0
	}

	if len(m.Versions) <= max {
		return nil
	}

	dropped := m.Versions[max:]
	m.Versions = m.Versions[:max]

	return dropped
}

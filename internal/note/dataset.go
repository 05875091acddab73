package note

import "fmt"

// Dataset is the portable export payload: a complete, self-consistent
// snapshot of all three collections. It is the only persisted file format
// the store must round-trip bit-for-bit.
type Dataset struct {
	Folders  []Folder  `json:"folders"`
	Notes    []Note    `json:"notes"`
	Versions []Version `json:"versions"`
}

// Problem describes one structural defect found in an imported dataset.
type Problem struct {
	Collection string `json:"collection"`
	Index      int    `json:"index"`
	Reason     string `json:"reason"`
}

// Validate checks the dataset for structural defects: records missing
// identifiers, non-positive version numbers, duplicate identities, and
// snapshots that break the dense 1..version log each note must carry.
// Every snapshot must reference a note in the same payload. It does not
// cross-check against live data; that is the merger's job.
func (d *Dataset) Validate() []Problem {
	var problems []Problem

	folderIDs := make(map[string]bool, len(d.Folders))
	for i, f := range d.Folders {
		switch {
		case f.ID == "":
			problems = append(problems, Problem{"folders", i, "missing id"})
		case folderIDs[f.ID]:
			problems = append(problems, Problem{"folders", i, "duplicate id " + f.ID})
		default:
			folderIDs[f.ID] = true
		}
		if f.Name == "" {
			problems = append(problems, Problem{"folders", i, "missing name"})
		}
	}

	noteIDs := make(map[string]bool, len(d.Notes))
	for i, n := range d.Notes {
		switch {
		case n.ID == "":
			problems = append(problems, Problem{"notes", i, "missing id"})
		case noteIDs[n.ID]:
			problems = append(problems, Problem{"notes", i, "duplicate id " + n.ID})
		default:
			noteIDs[n.ID] = true
		}
		if n.Version < 1 {
			problems = append(problems, Problem{"notes", i, "version must be >= 1"})
		}
	}

	type versionKey struct {
		noteID  string
		version int
	}
	seen := make(map[versionKey]bool, len(d.Versions))
	for i, v := range d.Versions {
		if v.NoteID == "" {
			problems = append(problems, Problem{"versions", i, "missing note_id"})
			continue
		}
		if v.Version < 1 {
			problems = append(problems, Problem{"versions", i, "version must be >= 1"})
			continue
		}
		if !noteIDs[v.NoteID] {
			problems = append(problems, Problem{"versions", i, "snapshot for note " + v.NoteID + " absent from payload"})
			continue
		}
		key := versionKey{v.NoteID, v.Version}
		if seen[key] {
			problems = append(problems, Problem{"versions", i, "duplicate snapshot"})
			continue
		}
		seen[key] = true
	}

	// The log must be dense: exactly one snapshot per integer from 1 to
	// each note's version counter. Skip notes already flagged above.
	if len(problems) == 0 {
		for i, n := range d.Notes {
			for k := 1; k <= n.Version; k++ {
				if !seen[versionKey{n.ID, k}] {
					problems = append(problems, Problem{"notes", i, fmt.Sprintf("note %s is missing snapshot v%d", n.ID, k)})
				}
			}
		}
	}

	return problems
}

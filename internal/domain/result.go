package domain

import "time"

// LineChange records one flipped line.
type LineChange struct {
	Index  int    `json:"line"`
	Rule   string `json:"rule"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// FileResult is the outcome of flipping one file.
type FileResult struct {
	Path    string       `json:"path"`
	NewPath string       `json:"new_path"`
	Mode    Mode         `json:"mode"`
	Changes []LineChange `json:"changes"`
	Written bool         `json:"written"`
	Renamed bool         `json:"renamed"`

	Before []string `json:"-"`
	After  []string `json:"-"`
}

// RuleCounts tallies changes per rule name.
func (r FileResult) RuleCounts() map[string]int {
	out := map[string]int{}
	for _, c := range r.Changes {
		out[c.Rule]++
	}
	return out
}

// RunResult is the outcome of one invocation over a list of paths.
type RunResult struct {
	Mode      Mode         `json:"mode"`
	DryRun    bool         `json:"dry_run"`
	StartedAt time.Time    `json:"started_at"`
	EndedAt   time.Time    `json:"ended_at"`
	Files     []FileResult `json:"files"`
}

// ChangedFiles counts files that had at least one flipped line or a new name.
func (r RunResult) ChangedFiles() int {
	n := 0
	for _, f := range r.Files {
		if len(f.Changes) > 0 || f.NewPath != f.Path {
			n++
		}
	}
	return n
}

package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/scorebook/scorebook/internal/rubric"
)

// Backup is the full-state interchange document.
type Backup struct {
	Assignments []rubric.Assignment `json:"assignments"`
	Submissions []rubric.Submission `json:"submissions"`
	Timestamp   string              `json:"timestamp"`
}

func NewBackup(assignments []rubric.Assignment, subs []rubric.Submission) Backup {
	if assignments == nil {
		assignments = []rubric.Assignment{}
	}
	if subs == nil {
		subs = []rubric.Submission{}
	}
	return Backup{
		Assignments: assignments,
		Submissions: subs,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

func (b Backup) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// DecodeBackup reads a backup document. Shape problems surface as a decode
// error; selection duplicates from hand-edited files are collapsed here so
// the core only ever sees proper sets.
func DecodeBackup(r io.Reader) (Backup, error) {
	var b Backup
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return Backup{}, err
	}
	for i := range b.Submissions {
		b.Submissions[i].Selected = b.Submissions[i].Selected.Normalize()
	}
	return b, nil
}

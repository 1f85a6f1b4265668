package rubric

// Merge reconciles an imported batch of submissions against the existing
// collection. Identity is the (assignmentId, student.id) pair, never the
// submission's own id: ids are regenerated per store and carry no meaning
// across export/import boundaries.
//
// On a match, the incoming score wins (the caller recomputes afterward if the
// rubric changed), selections union per question, and a non-empty incoming
// student name replaces the existing one. Unmatched submissions append; their
// id is kept for round-trip fidelity unless it collides with any existing
// submission's id across all assignments, in which case a fresh one is drawn
// from gen.
//
// The selection union is monotonic: merging can only add selections. Repeated
// application with the same batch yields the same unions.
func Merge(existing, incoming []Submission, gen IDGen) []Submission {
	out := make([]Submission, len(existing))
	copy(out, existing)

	for _, inc := range incoming {
		idx := -1
		for i, s := range out {
			if s.AssignmentID == inc.AssignmentID && s.Student.ID == inc.Student.ID {
				idx = i
				break
			}
		}

		if idx < 0 {
			sub := inc
			sub.Selected = inc.Selected.Normalize()
			for _, s := range out {
				if s.ID == sub.ID {
					sub.ID = gen()
					break
				}
			}
			out = append(out, sub)
			continue
		}

		cur := out[idx]
		merged := cur.Selected.Clone()
		for qid, cids := range inc.Selected {
			set := merged[qid]
			for _, cid := range cids {
				set = set.Add(cid)
			}
			merged[qid] = set
		}
		cur.Selected = merged
		cur.Score = inc.Score
		if inc.Student.Name != "" {
			cur.Student.Name = inc.Student.Name
		}
		out[idx] = cur
	}
	return out
}

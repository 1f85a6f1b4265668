package rubric

// Comment is a reusable deduction annotation within a question's bank.
// Deduction is a non-negative magnitude: points subtracted when selected.
type Comment struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Deduction float64 `json:"deduction"`
}

// Question is a gradable item owned by an Assignment. Comment order is
// display-significant: transcripts and markdown emit comments in bank order.
type Question struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Comments []Comment `json:"comments"`
}

// Assignment is a grading rubric template. Question/comment ids are unique
// within their owning collection only; nothing is cross-checked between parents.
type Assignment struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Student identifiers are free-form, chosen by the instructor.
type Student struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Submission is one student's graded instance of an assignment. Selected is
// the source of truth; Score is derived from it and cached. Selected may hold
// ids that no longer exist in the assignment; consumers skip those silently.
type Submission struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignmentId"`
	Student      Student   `json:"student"`
	Selected     Selection `json:"selected"`
	Score        float64   `json:"score"`
}

// CommentSet is an insertion-ordered set of comment ids. The JSON form is a
// plain array; Add rejects duplicates so the set invariant is structural.
type CommentSet []string

func NewCommentSet(ids ...string) CommentSet {
	var s CommentSet
	for _, id := range ids {
		s = s.Add(id)
	}
	return s
}

func (s CommentSet) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Add returns a set containing id, leaving the receiver untouched.
func (s CommentSet) Add(id string) CommentSet {
	if s.Contains(id) {
		return s
	}
	out := make(CommentSet, len(s), len(s)+1)
	copy(out, s)
	return append(out, id)
}

func (s CommentSet) Remove(id string) CommentSet {
	out := make(CommentSet, 0, len(s))
	for _, v := range s {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Selection maps question id to the set of selected comment ids for it.
type Selection map[string]CommentSet

func (sel Selection) Clone() Selection {
	out := make(Selection, len(sel))
	for qid, cids := range sel {
		cp := make(CommentSet, len(cids))
		copy(cp, cids)
		out[qid] = cp
	}
	return out
}

// Normalize collapses duplicate ids in every set. Decoded JSON arrives as raw
// arrays, so externally supplied selections pass through here at the boundary.
func (sel Selection) Normalize() Selection {
	out := make(Selection, len(sel))
	for qid, cids := range sel {
		out[qid] = NewCommentSet(cids...)
	}
	return out
}

// FindQuestion looks a question up by id within the assignment.
func (a Assignment) FindQuestion(id string) (Question, bool) {
	for _, q := range a.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// FindComment looks a comment up by id within the question's bank.
func (q Question) FindComment(id string) (Comment, bool) {
	for _, c := range q.Comments {
		if c.ID == id {
			return c, true
		}
	}
	return Comment{}, false
}

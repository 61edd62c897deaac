package student

type (
	Student struct {
		ID          int64  `json:"id" db:"id"`
		Name        string `json:"name" db:"name"`
		School      string `json:"school" db:"school"`
		Grade       string `json:"grade" db:"grade"` // legacy label, eg. "초3", "중1", "졸업"
		ParentPhone string `json:"parent_phone" db:"parent_phone"`
		Memo        string `json:"memo" db:"memo"`
	}

	ClassGroup struct {
		ID    int64  `json:"id" db:"id"`
		Name  string `json:"name" db:"name"`
		Level string `json:"level" db:"level"`
		Memo  string `json:"memo" db:"memo"`
	}

	// ClassRef is the subset of a ClassGroup returned by membership lookups.
	ClassRef struct {
		ID    int64  `json:"id" db:"id"`
		Name  string `json:"name" db:"name"`
		Level string `json:"level" db:"level"`
	}
)

func ClassIDs(refs []ClassRef) []int64 {
	ids := make([]int64, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	return ids
}

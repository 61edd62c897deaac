package vocab

import "time"

// ResultModeQuiz is the Result.Mode of multiple-choice quizzes.
const ResultModeQuiz = "quiz"

// DefaultDifficulty is used when an item's difficulty is missing or outside 1..5.
const DefaultDifficulty = 3

type (
	Set struct {
		ID          int64     `json:"id" db:"id"`
		Name        string    `json:"name" db:"name"`
		Description string    `json:"description" db:"description"`
		Level       string    `json:"level" db:"level"`
		IsActive    bool      `json:"is_active" db:"is_active"`
		CreatedBy   string    `json:"created_by" db:"created_by"`
		CreatedAt   time.Time `json:"created_at" db:"created_at"`
	}

	NewSet struct {
		Name        string `json:"name" validate:"notblank,max=200"`
		Description string `json:"description"`
		Level       string `json:"level" validate:"max=50"`
		CreatedBy   string `json:"created_by" validate:"max=100"`
	}

	Item struct {
		ID           int64  `json:"id" db:"id"`
		SetID        int64  `json:"set_id" db:"set_id"`
		Word         string `json:"word" db:"word"`
		Meaning      string `json:"meaning" db:"meaning"`
		PartOfSpeech string `json:"part_of_speech" db:"part_of_speech"`
		ExampleEn    string `json:"example_en" db:"example_en"`
		ExampleKo    string `json:"example_ko" db:"example_ko"`
		Tags         string `json:"tags" db:"tags"`
		Difficulty   int    `json:"difficulty" db:"difficulty"`
	}

	NewItem struct {
		Word         string
		Meaning      string
		PartOfSpeech string
		ExampleEn    string
		ExampleKo    string
		Tags         string
		Difficulty   int
	}

	// Assignment gives a set either to a whole class or to a single student, never both.
	Assignment struct {
		ID         int64     `json:"id" db:"id"`
		SetID      int64     `json:"set_id" db:"set_id"`
		ClassID    *int64    `json:"class_id,omitempty" db:"class_id"`
		StudentID  *int64    `json:"student_id,omitempty" db:"student_id"`
		AssignedBy string    `json:"assigned_by" db:"assigned_by"`
		AssignedAt time.Time `json:"assigned_at" db:"assigned_at"`
	}

	NewAssignment struct {
		SetID      int64  `json:"set_id" validate:"required,gt=0"`
		ClassID    *int64 `json:"class_id" validate:"omitempty,gt=0"`
		StudentID  *int64 `json:"student_id" validate:"omitempty,gt=0"`
		AssignedBy string `json:"assigned_by" validate:"max=100"`
	}

	Result struct {
		ID           int64     `json:"id" db:"id"`
		SetID        int64     `json:"set_id" db:"set_id"`
		StudentID    int64     `json:"student_id" db:"student_id"`
		StudentName  string    `json:"student_name,omitempty" db:"student_name"`
		TakenAt      time.Time `json:"taken_at" db:"taken_at"`
		Mode         string    `json:"mode" db:"mode"`
		CorrectCount int       `json:"correct_count" db:"correct_count"`
		TotalCount   int       `json:"total_count" db:"total_count"`
		Percent      float64   `json:"percent" db:"percent"`
	}

	// Question is one multiple-choice question. Options holds the correct meaning exactly once.
	Question struct {
		ItemID       int64    `json:"item_id"`
		Word         string   `json:"word"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"-"`
	}

	// Quiz is a generated quiz waiting for its answers.
	Quiz struct {
		ID        string     `json:"id"`
		SetID     int64      `json:"set_id"`
		StudentID int64      `json:"student_id"`
		Questions []Question `json:"questions"`
		CreatedAt time.Time  `json:"created_at"`
	}
)

func (q Question) CorrectAnswer() string {
	return q.Options[q.CorrectIndex]
}

// validDifficulty returns d if within 1..5, DefaultDifficulty otherwise.
func validDifficulty(d int) int {
	if d < 1 || d > 5 {
		return DefaultDifficulty
	}
	return d
}

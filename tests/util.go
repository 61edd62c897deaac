package testutil

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/student"
	"github.com/trezcool/hagwon/core/vocab"
)

type (
	studentCreator interface {
		CreateStudent(ctx context.Context, stu student.Student) (student.Student, error)
		CreateClass(ctx context.Context, cls student.ClassGroup) (student.ClassGroup, error)
		AddClassMember(ctx context.Context, classID, studentID int64) error
	}

	setCreator interface {
		CreateSet(ctx context.Context, s vocab.Set) (vocab.Set, error)
		AddItems(ctx context.Context, setID int64, items []vocab.NewItem) (int, error)
	}
)

// NewConfig returns the configuration used by tests.
func NewConfig() *core.Config {
	return &core.Config{
		AppName:           "Hagwon",
		Env:               "TEST",
		Debug:             true,
		TestMode:          true,
		Timezone:          "Asia/Seoul",
		PromotionSchedule: "@daily",
		QuizTTL:           time.Hour,
		DefaultQuizSize:   10,
	}
}

func CreateStudent(t *testing.T, repo studentCreator, name, grade string, classIDs ...int64) student.Student {
	stu, err := repo.CreateStudent(context.Background(), student.Student{Name: name, Grade: grade})
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	for _, id := range classIDs {
		if err := repo.AddClassMember(context.Background(), id, stu.ID); err != nil {
			t.Fatalf("createStudent() failed: %v", err)
		}
	}
	return stu
}

func CreateClass(t *testing.T, repo studentCreator, name string) student.ClassGroup {
	cls, err := repo.CreateClass(context.Background(), student.ClassGroup{Name: name})
	if err != nil {
		t.Fatalf("createClass() failed: %v", err)
	}
	return cls
}

// CreateSet creates an active set holding the given word/meaning pairs.
func CreateSet(t *testing.T, repo setCreator, name string, pairs ...[2]string) vocab.Set {
	set, err := repo.CreateSet(context.Background(), vocab.Set{
		Name:      name,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("createSet() failed: %v", err)
	}
	items := make([]vocab.NewItem, 0, len(pairs))
	for _, p := range pairs {
		items = append(items, vocab.NewItem{Word: p[0], Meaning: p[1], Difficulty: vocab.DefaultDifficulty})
	}
	if len(items) > 0 {
		if _, err := repo.AddItems(context.Background(), set.ID, items); err != nil {
			t.Fatalf("createSet() failed: %v", err)
		}
	}
	return set
}

// Logger is a core.Logger writing to the test log.
type Logger struct {
	T *testing.T
}

var _ core.Logger = Logger{}

func (l Logger) log(level, msg string, args []interface{}) {
	if l.T == nil {
		log.Println(level, msg, args)
		return
	}
	l.T.Helper()
	l.T.Log(append([]interface{}{level, msg}, args...)...)
}

func (l Logger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l Logger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l Logger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l Logger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l Logger) Fatal(msg string, args ...interface{}) { l.log("FATAL", msg, args) }

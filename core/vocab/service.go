package vocab

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/student"
)

var (
	// errors
	ErrSetNotFound  = errors.New("vocabulary set not found")
	ErrQuizNotFound = errors.New("quiz not found or already submitted")

	// mockable
	nowFunc   = time.Now
	randFunc  = func() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) }
	newQuizID = func() string { return uuid.New().String() }
)

type (
	Repository interface {
		// FetchVocabAssignments returns the assignments given to the student or to any of classIDs,
		// in assignment order.
		FetchVocabAssignments(ctx context.Context, studentID int64, classIDs []int64) ([]Assignment, error)
		// FetchVocabItems returns the items of a set in insertion order.
		FetchVocabItems(ctx context.Context, setID int64) ([]Item, error)
		GetSet(ctx context.Context, id int64) (Set, error)
		// GetSets silently ignores unknown IDs.
		GetSets(ctx context.Context, ids []int64) ([]Set, error)
		// ListSets returns the newest sets first.
		ListSets(ctx context.Context, activeOnly bool) ([]Set, error)
		CreateSet(ctx context.Context, s Set) (Set, error)
		// SetActive returns ErrSetNotFound for unknown sets.
		SetActive(ctx context.Context, id int64, active bool) error
		CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		AddItems(ctx context.Context, setID int64, items []NewItem) (int, error)
		RecordQuizResult(ctx context.Context, r Result) (Result, error)
		// FetchResults returns the results of a set, newest first.
		FetchResults(ctx context.Context, setID int64) ([]Result, error)
	}

	// QuizStore keeps generated quizzes until they are answered.
	QuizStore interface {
		SaveQuiz(ctx context.Context, q Quiz) error
		// TakeQuiz removes and returns the quiz. ErrQuizNotFound is returned for unknown,
		// expired or already taken quizzes.
		TakeQuiz(ctx context.Context, id string) (Quiz, error)
	}

	Service struct {
		repo            Repository
		students        student.Repository
		quizzes         QuizStore
		validate        *validator.Validate
		defaultQuizSize int
	}
)

func NewService(
	repo Repository,
	students student.Repository,
	quizzes QuizStore,
	validate *validator.Validate,
	conf *core.Config,
) *Service {
	return &Service{
		repo:            repo,
		students:        students,
		quizzes:         quizzes,
		validate:        validate,
		defaultQuizSize: conf.DefaultQuizSize,
	}
}

// AssignedSets returns the active sets assigned to the student directly or through their classes.
func (svc *Service) AssignedSets(ctx context.Context, studentID int64) ([]Set, error) {
	if _, err := svc.students.GetStudent(ctx, studentID); err != nil {
		return nil, err
	}
	classes, err := svc.students.FetchClassMembership(ctx, studentID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "fetching class membership")
	}
	classIDs := student.ClassIDs(classes)

	assignments, err := svc.repo.FetchVocabAssignments(ctx, studentID, classIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "fetching assignments")
	}
	if len(assignments) == 0 {
		return []Set{}, nil
	}

	sets, err := svc.repo.GetSets(ctx, SetIDs(assignments))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "fetching sets")
	}
	byID := make(map[int64]Set, len(sets))
	for _, s := range sets {
		byID[s.ID] = s
	}
	return ResolveAssignedSets(studentID, classIDs, assignments, byID), nil
}

func (svc *Service) Sets(ctx context.Context, activeOnly bool) ([]Set, error) {
	return svc.repo.ListSets(ctx, activeOnly)
}

func (svc *Service) CreateSet(ctx context.Context, ns NewSet) (Set, error) {
	if err := svc.validate.Struct(ns); err != nil {
		return Set{}, err
	}
	set, err := svc.repo.CreateSet(ctx, Set{
		Name:        core.CleanString(ns.Name),
		Description: core.CleanString(ns.Description),
		Level:       core.CleanString(ns.Level),
		CreatedBy:   core.CleanString(ns.CreatedBy),
		IsActive:    true,
		CreatedAt:   nowFunc().UTC(),
	})
	if err != nil {
		return Set{}, pkgerrors.Wrap(err, "creating set")
	}
	return set, nil
}

// SetActive turns a set on or off. Inactive sets are hidden from students and cannot be quizzed on.
func (svc *Service) SetActive(ctx context.Context, setID int64, active bool) (Set, error) {
	if err := svc.repo.SetActive(ctx, setID, active); err != nil {
		return Set{}, err
	}
	return svc.repo.GetSet(ctx, setID)
}

// Assign gives a set to a class or to a student.
func (svc *Service) Assign(ctx context.Context, na NewAssignment) (Assignment, error) {
	if err := svc.validate.Struct(na); err != nil {
		return Assignment{}, err
	}
	if (na.ClassID == nil) == (na.StudentID == nil) {
		return Assignment{}, core.NewValidationError(nil, core.FieldError{
			Field: "class_id",
			Error: "exactly one of class_id or student_id is required",
		})
	}
	if _, err := svc.repo.GetSet(ctx, na.SetID); err != nil {
		return Assignment{}, err
	}
	if na.StudentID != nil {
		if _, err := svc.students.GetStudent(ctx, *na.StudentID); err != nil {
			return Assignment{}, err
		}
	} else if _, err := svc.students.FetchClassMembers(ctx, *na.ClassID); err != nil {
		return Assignment{}, err
	}

	a, err := svc.repo.CreateAssignment(ctx, Assignment{
		SetID:      na.SetID,
		ClassID:    na.ClassID,
		StudentID:  na.StudentID,
		AssignedBy: core.CleanString(na.AssignedBy),
		AssignedAt: nowFunc().UTC(),
	})
	if err != nil {
		return Assignment{}, pkgerrors.Wrap(err, "creating assignment")
	}
	return a, nil
}

// ImportBulk parses pasted items and adds them to the set. It returns the number of added items.
func (svc *Service) ImportBulk(ctx context.Context, setID int64, text string) (int, error) {
	if _, err := svc.repo.GetSet(ctx, setID); err != nil {
		return 0, err
	}
	items := ParseBulk(text)
	if len(items) == 0 {
		return 0, core.NewValidationError(nil, core.FieldError{
			Field: "text",
			Error: "no line could be parsed, use TAB or ' / ' separators",
		})
	}
	n, err := svc.repo.AddItems(ctx, setID, items)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "adding items")
	}
	return n, nil
}

// StartQuiz generates a quiz over the set and keeps it until it is submitted.
// Only the student's active assigned sets can be quizzed on, others are reported as ErrSetNotFound.
// n == 0 asks for the default quiz size (capped by the number of items).
func (svc *Service) StartQuiz(ctx context.Context, setID, studentID int64, n int) (Quiz, error) {
	if _, err := svc.repo.GetSet(ctx, setID); err != nil {
		return Quiz{}, err
	}
	assigned, err := svc.AssignedSets(ctx, studentID)
	if err != nil {
		return Quiz{}, err
	}
	if !containsSet(assigned, setID) {
		return Quiz{}, ErrSetNotFound
	}
	items, err := svc.repo.FetchVocabItems(ctx, setID)
	if err != nil {
		return Quiz{}, pkgerrors.Wrap(err, "fetching items")
	}
	if n == 0 {
		n = svc.defaultQuizSize
		if n > len(items) {
			n = len(items)
		}
	}

	questions, err := GenerateQuiz(randFunc(), items, n)
	if err != nil {
		return Quiz{}, err
	}
	quiz := Quiz{
		ID:        newQuizID(),
		SetID:     setID,
		StudentID: studentID,
		Questions: questions,
		CreatedAt: nowFunc().UTC(),
	}
	if err := svc.quizzes.SaveQuiz(ctx, quiz); err != nil {
		return Quiz{}, pkgerrors.Wrap(err, "saving quiz")
	}
	return quiz, nil
}

func containsSet(sets []Set, id int64) bool {
	for _, s := range sets {
		if s.ID == id {
			return true
		}
	}
	return false
}

// SubmitQuiz scores the answers of a pending quiz. A quiz can only be submitted once.
func (svc *Service) SubmitQuiz(ctx context.Context, quizID string, answers []string) (Result, error) {
	quiz, err := svc.quizzes.TakeQuiz(ctx, quizID)
	if err != nil {
		return Result{}, err
	}
	return svc.Submit(ctx, quiz.SetID, quiz.StudentID, quiz.Questions, answers)
}

// Submit scores the answers and records the result. No result is returned unless it was recorded.
func (svc *Service) Submit(ctx context.Context, setID, studentID int64, questions []Question, answers []string) (Result, error) {
	correct, total, percent := Score(questions, answers)
	res, err := svc.repo.RecordQuizResult(ctx, Result{
		SetID:        setID,
		StudentID:    studentID,
		TakenAt:      nowFunc().UTC(),
		Mode:         ResultModeQuiz,
		CorrectCount: correct,
		TotalCount:   total,
		Percent:      percent,
	})
	if err != nil {
		return Result{}, pkgerrors.Wrap(err, "recording quiz result")
	}
	return res, nil
}

func (svc *Service) Results(ctx context.Context, setID int64) ([]Result, error) {
	if _, err := svc.repo.GetSet(ctx, setID); err != nil {
		return nil, err
	}
	return svc.repo.FetchResults(ctx, setID)
}

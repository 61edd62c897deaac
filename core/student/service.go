package student

import (
	"context"
	"errors"
)

var (
	// errors
	ErrNotFound      = errors.New("student not found")
	ErrClassNotFound = errors.New("class not found")
)

type (
	Repository interface {
		// FetchRoster returns every student, ordered by ID.
		FetchRoster(ctx context.Context) ([]Student, error)
		GetStudent(ctx context.Context, id int64) (Student, error)
		// FetchClassMembership returns the classes the student belongs to (possibly none).
		FetchClassMembership(ctx context.Context, studentID int64) ([]ClassRef, error)
		// FetchClassMembers returns the IDs of the students of a class, ordered by ID.
		FetchClassMembers(ctx context.Context, classID int64) ([]int64, error)
		WriteStudentGrade(ctx context.Context, studentID int64, label string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Roster(ctx context.Context) ([]Student, error) {
	return svc.repo.FetchRoster(ctx)
}

func (svc *Service) Get(ctx context.Context, id int64) (Student, error) {
	return svc.repo.GetStudent(ctx, id)
}

// ClassIDs returns the IDs of the classes the student belongs to.
// ErrNotFound is returned for unknown students.
func (svc *Service) ClassIDs(ctx context.Context, studentID int64) ([]int64, error) {
	if _, err := svc.repo.GetStudent(ctx, studentID); err != nil {
		return nil, err
	}
	refs, err := svc.repo.FetchClassMembership(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return ClassIDs(refs), nil
}

package timetable

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/student"
)

type (
	Repository interface {
		// FetchWeeklySlots returns the slots of the given classes, in any order.
		FetchWeeklySlots(ctx context.Context, classIDs []int64) ([]Slot, error)
		CreateSlot(ctx context.Context, s Slot) (Slot, error)
	}

	Service struct {
		repo     Repository
		students student.Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, students student.Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, students: students, validate: validate}
}

func (svc *Service) WeeklyTimetable(ctx context.Context, classIDs []int64) (Week, error) {
	classIDs = core.UniqueInt64s(classIDs)
	if len(classIDs) == 0 {
		return Week{}, nil
	}
	slots, err := svc.repo.FetchWeeklySlots(ctx, classIDs)
	if err != nil {
		return Week{}, errors.Wrap(err, "fetching weekly slots")
	}
	return BuildWeek(slots), nil
}

// StudentTimetable merges the timetables of every class the student belongs to.
func (svc *Service) StudentTimetable(ctx context.Context, studentID int64) (Week, error) {
	if _, err := svc.students.GetStudent(ctx, studentID); err != nil {
		return Week{}, err
	}
	refs, err := svc.students.FetchClassMembership(ctx, studentID)
	if err != nil {
		return Week{}, errors.Wrap(err, "fetching class membership")
	}
	return svc.WeeklyTimetable(ctx, student.ClassIDs(refs))
}

func (svc *Service) AddSlot(ctx context.Context, ns NewSlot) (Slot, error) {
	if err := svc.validate.Struct(ns); err != nil {
		return Slot{}, err
	}
	// HH:MM strings compare like the times they represent
	if ns.EndTime <= ns.StartTime {
		return Slot{}, core.NewValidationError(nil, core.FieldError{
			Field: "end_time",
			Error: "must be after start_time",
		})
	}

	slot, err := svc.repo.CreateSlot(ctx, Slot{
		ClassID:     ns.ClassID,
		Weekday:     *ns.Weekday,
		StartTime:   ns.StartTime,
		EndTime:     ns.EndTime,
		Subject:     core.CleanString(ns.Subject),
		Room:        core.CleanString(ns.Room),
		TeacherName: core.CleanString(ns.TeacherName),
		Memo:        core.CleanString(ns.Memo),
	})
	if err != nil {
		return Slot{}, errors.Wrap(err, "creating slot")
	}
	return slot, nil
}

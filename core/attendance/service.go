package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/calendar"
	"github.com/trezcool/hagwon/core/student"
)

var nowFunc = time.Now // mockable

type (
	Repository interface {
		// FetchAttendanceEvents returns the events of the scope dated within the range, in any order.
		FetchAttendanceEvents(ctx context.Context, scope Scope, dates core.DateRange) ([]Event, error)
		CreateEvent(ctx context.Context, ev Event) (Event, error)
	}

	MonthlyCalendar struct {
		Year    int              `json:"year"`
		Month   time.Month       `json:"month"`
		Summary map[int]Severity `json:"summary"`
		Grid    calendar.Grid    `json:"grid"`
		// Tallies is only filled for class scopes.
		Tallies map[int]Tally `json:"tallies,omitempty"`
	}

	Service struct {
		repo     Repository
		students student.Repository
		validate *validator.Validate
		loc      *time.Location
	}
)

func NewService(repo Repository, students student.Repository, validate *validator.Validate, conf *core.Config) *Service {
	return &Service{repo: repo, students: students, validate: validate, loc: conf.Location()}
}

// CheckMonth rejects months a calendar cannot be built for.
func CheckMonth(year int, month time.Month) error {
	if year < 1 || year > 9999 {
		return core.NewArgumentError(fmt.Sprintf("invalid year: %d", year))
	}
	if month < time.January || month > time.December {
		return core.NewArgumentError(fmt.Sprintf("invalid month: %d", month))
	}
	return nil
}

func (svc *Service) fetchMonth(ctx context.Context, scope Scope, year int, month time.Month) ([]Event, error) {
	if err := scope.validate(); err != nil {
		return nil, err
	}
	if err := CheckMonth(year, month); err != nil {
		return nil, err
	}
	events, err := svc.repo.FetchAttendanceEvents(ctx, scope, core.MonthRange(year, month))
	if err != nil {
		return nil, errors.Wrap(err, "fetching attendance events")
	}
	return events, nil
}

func (svc *Service) MonthlySummary(ctx context.Context, scope Scope, year int, month time.Month) (map[int]Severity, error) {
	events, err := svc.fetchMonth(ctx, scope, year, month)
	if err != nil {
		return nil, err
	}
	return MonthlySummary(events, year, month), nil
}

func (svc *Service) MonthlyCalendar(ctx context.Context, scope Scope, year int, month time.Month) (MonthlyCalendar, error) {
	events, err := svc.fetchMonth(ctx, scope, year, month)
	if err != nil {
		return MonthlyCalendar{}, err
	}

	summary := MonthlySummary(events, year, month)
	cal := MonthlyCalendar{
		Year:    year,
		Month:   month,
		Summary: summary,
		Grid:    calendar.BuildGrid(year, month, StatusCell(summary)),
	}
	if !scope.IsStudent() {
		cal.Tallies = DailyTallies(events, year, month)
	}
	return cal, nil
}

// Record validates and stores an attendance event.
func (svc *Service) Record(ctx context.Context, ne NewEvent) (Event, error) {
	if err := svc.validate.Struct(ne); err != nil {
		return Event{}, err
	}
	if _, err := svc.students.GetStudent(ctx, ne.StudentID); err != nil {
		return Event{}, err
	}
	return svc.record(ctx, ne, nowFunc().In(svc.loc))
}

// RecordClass stores the same event for every student of the class.
func (svc *Service) RecordClass(ctx context.Context, classID int64, ce NewClassEvent) ([]Event, error) {
	if err := svc.validate.Struct(ce); err != nil {
		return nil, err
	}
	members, err := svc.students.FetchClassMembers(ctx, classID)
	if err != nil {
		return nil, err
	}

	now := nowFunc().In(svc.loc)
	events := make([]Event, 0, len(members))
	for _, studentID := range members {
		ev, err := svc.record(ctx, NewEvent{
			StudentID:  studentID,
			ClassID:    &classID,
			Date:       ce.Date,
			Status:     ce.Status,
			Homework:   ce.Homework,
			DailyTest:  ce.DailyTest,
			RecordedBy: ce.RecordedBy,
		}, now)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func (svc *Service) record(ctx context.Context, ne NewEvent, now time.Time) (Event, error) {
	ev := Event{
		StudentID:   ne.StudentID,
		ClassID:     ne.ClassID,
		Date:        ne.Date,
		Status:      ne.Status,
		Homework:    ne.Homework,
		DailyTest:   ne.DailyTest,
		CheckinTime: ne.CheckinTime,
		Channel:     ne.Channel,
		RecordedBy:  core.CleanString(ne.RecordedBy),
	}
	if ev.Date == "" {
		ev.Date = now.Format(core.DateLayout)
	}
	if ev.CheckinTime == "" {
		ev.CheckinTime = now.Format("15:04:05")
	}
	if ev.Channel == "" {
		ev.Channel = ChannelManual
	}

	ev, err := svc.repo.CreateEvent(ctx, ev)
	if err != nil {
		return Event{}, errors.Wrap(err, "recording attendance")
	}
	return ev, nil
}

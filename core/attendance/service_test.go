package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/student"
)

type stubRepo struct {
	events   []Event
	err      error
	gotScope Scope
	gotRange core.DateRange
	fetches  int
	created  []Event
}

func (r *stubRepo) FetchAttendanceEvents(_ context.Context, scope Scope, dates core.DateRange) ([]Event, error) {
	r.fetches++
	r.gotScope, r.gotRange = scope, dates
	return r.events, r.err
}

func (r *stubRepo) CreateEvent(_ context.Context, ev Event) (Event, error) {
	if r.err != nil {
		return Event{}, r.err
	}
	ev.ID = int64(len(r.created) + 1)
	r.created = append(r.created, ev)
	return ev, nil
}

type stubStudents struct {
	student.Repository
}

func (stubStudents) GetStudent(_ context.Context, id int64) (student.Student, error) {
	if id > 10 {
		return student.Student{}, student.ErrNotFound
	}
	return student.Student{ID: id}, nil
}

func (stubStudents) FetchClassMembers(_ context.Context, classID int64) ([]int64, error) {
	if classID != 3 {
		return nil, student.ErrClassNotFound
	}
	return []int64{1, 2}, nil
}

func newTestService(repo Repository) *Service {
	validate, _ := core.NewValidator()
	return NewService(repo, stubStudents{}, validate, &core.Config{Timezone: "Asia/Seoul"})
}

func TestService_MonthlyCalendar(t *testing.T) {
	ctx := context.Background()

	t.Run("student scope", func(t *testing.T) {
		repo := &stubRepo{events: []Event{
			ev("2024-03-04", StatusPresent),
			ev("2024-03-04", StatusLate),
		}}
		cal, err := newTestService(repo).MonthlyCalendar(ctx, StudentScope(1), 2024, time.March)
		require.NoError(t, err)

		assert.Equal(t, StudentScope(1), repo.gotScope)
		assert.Equal(t, "2024-03-01", repo.gotRange.FromString())
		assert.Equal(t, "2024-03-31", repo.gotRange.ToString())
		assert.Equal(t, Late, cal.Summary[4])
		assert.Equal(t, "4\nlate", cal.Grid[1][0]) // monday of the second week
		assert.Equal(t, "1", cal.Grid[0][4])
		assert.Nil(t, cal.Tallies)
	})

	t.Run("class scope has tallies", func(t *testing.T) {
		repo := &stubRepo{events: []Event{ev("2024-03-05", StatusUnexcusedAbsent)}}
		cal, err := newTestService(repo).MonthlyCalendar(ctx, ClassScope(3), 2024, time.March)
		require.NoError(t, err)
		assert.Equal(t, Tally{UnexcusedAbsent: 1}, cal.Tallies[5])
	})

	t.Run("invalid arguments", func(t *testing.T) {
		tests := []struct {
			name  string
			scope Scope
			year  int
			month time.Month
		}{
			{name: "empty scope", scope: Scope{}, year: 2024, month: time.March},
			{name: "both scopes", scope: Scope{StudentID: 1, ClassID: 1}, year: 2024, month: time.March},
			{name: "month 13", scope: StudentScope(1), year: 2024, month: 13},
			{name: "month 0", scope: StudentScope(1), year: 2024, month: 0},
			{name: "year 0", scope: StudentScope(1), year: 0, month: time.March},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := &stubRepo{}
				_, err := newTestService(repo).MonthlyCalendar(ctx, tt.scope, tt.year, tt.month)
				assert.True(t, core.IsArgumentError(err), "got %v", err)
				assert.Zero(t, repo.fetches)
			})
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := &stubRepo{err: errors.New("boom")}
		_, err := newTestService(repo).MonthlySummary(ctx, StudentScope(1), 2024, time.March)
		assert.EqualError(t, err, "fetching attendance events: boom")
	})
}

func TestService_Record(t *testing.T) {
	ctx := context.Background()
	nowFunc = func() time.Time { return time.Date(2024, 3, 4, 0, 30, 15, 0, time.UTC) }
	defer func() { nowFunc = time.Now }()

	t.Run("defaults", func(t *testing.T) {
		repo := &stubRepo{}
		got, err := newTestService(repo).Record(ctx, NewEvent{StudentID: 1, Status: StatusLate})
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "2024-03-04", got.Date) // 09:30 in Seoul
		assert.Equal(t, "09:30:15", got.CheckinTime)
		assert.Equal(t, ChannelManual, got.Channel)
	})

	t.Run("explicit values", func(t *testing.T) {
		classID := int64(2)
		repo := &stubRepo{}
		got, err := newTestService(repo).Record(ctx, NewEvent{
			StudentID:   1,
			ClassID:     &classID,
			Date:        "2024-02-29",
			Status:      StatusPresent,
			Homework:    MarkDone,
			CheckinTime: "18:00:00",
			Channel:     ChannelScanned,
			RecordedBy:  " teacher ",
		})
		require.NoError(t, err)
		assert.Equal(t, "2024-02-29", got.Date)
		assert.Equal(t, "18:00:00", got.CheckinTime)
		assert.Equal(t, "teacher", got.RecordedBy)
		assert.Equal(t, &classID, got.ClassID)
	})

	t.Run("unknown student", func(t *testing.T) {
		repo := &stubRepo{}
		_, err := newTestService(repo).Record(ctx, NewEvent{StudentID: 42, Status: StatusLate})
		assert.Equal(t, student.ErrNotFound, err)
		assert.Empty(t, repo.created)
	})

	t.Run("invalid", func(t *testing.T) {
		tests := []struct {
			name string
			ne   NewEvent
		}{
			{name: "no student", ne: NewEvent{Status: StatusPresent}},
			{name: "bad status", ne: NewEvent{StudentID: 1, Status: "absent"}},
			{name: "bad mark", ne: NewEvent{StudentID: 1, Status: StatusPresent, Homework: "○"}},
			{name: "bad date", ne: NewEvent{StudentID: 1, Status: StatusPresent, Date: "2024-02-30"}},
			{name: "bad time", ne: NewEvent{StudentID: 1, Status: StatusPresent, CheckinTime: "9:00"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := &stubRepo{}
				_, err := newTestService(repo).Record(ctx, tt.ne)
				var verrs validator.ValidationErrors
				assert.True(t, errors.As(err, &verrs), "got %v", err)
				assert.Empty(t, repo.created)
			})
		}
	})
}

func TestService_RecordClass(t *testing.T) {
	ctx := context.Background()
	nowFunc = func() time.Time { return time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC) }
	defer func() { nowFunc = time.Now }()

	repo := &stubRepo{}
	svc := newTestService(repo)

	events, err := svc.RecordClass(ctx, 3, NewClassEvent{Status: StatusPresent, Homework: MarkDone})
	require.NoError(t, err)
	require.Len(t, events, 2)
	for i, ev := range events {
		assert.Equal(t, int64(i+1), ev.StudentID)
		assert.Equal(t, int64(3), *ev.ClassID)
		assert.Equal(t, "2024-03-04", ev.Date)
		assert.Equal(t, "18:00:00", ev.CheckinTime)
		assert.Equal(t, MarkDone, ev.Homework)
	}

	_, err = svc.RecordClass(ctx, 4, NewClassEvent{Status: StatusPresent})
	assert.Equal(t, student.ErrClassNotFound, err)

	_, err = svc.RecordClass(ctx, 3, NewClassEvent{Status: "lol"})
	assert.Error(t, err)
	assert.Len(t, repo.created, 2)
}

package inmemdb

import (
	"context"

	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/attendance"
)

type attendanceRepository struct {
	db *attendanceTable
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *DB) *attendanceRepository {
	return &attendanceRepository{db: db.attendance}
}

func (repo *attendanceRepository) FetchAttendanceEvents(_ context.Context, scope attendance.Scope, dates core.DateRange) ([]attendance.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	events := make([]attendance.Event, 0)
	for _, ev := range repo.db.table {
		if !dates.Contains(ev.Date) {
			continue
		}
		if scope.IsStudent() {
			if ev.StudentID != scope.StudentID {
				continue
			}
		} else if ev.ClassID == nil || *ev.ClassID != scope.ClassID {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (repo *attendanceRepository) CreateEvent(_ context.Context, ev attendance.Event) (attendance.Event, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pk++
	ev.ID = repo.db.pk
	repo.db.table = append(repo.db.table, ev)
	return ev, nil
}

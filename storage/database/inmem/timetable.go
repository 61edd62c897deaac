package inmemdb

import (
	"context"

	"github.com/trezcool/hagwon/core/student"
	"github.com/trezcool/hagwon/core/timetable"
)

type timetableRepository struct {
	db      *timetableTable
	classes *studentTable
}

var _ timetable.Repository = (*timetableRepository)(nil)

func NewTimetableRepository(db *DB) *timetableRepository {
	return &timetableRepository{db: db.timetable, classes: db.student}
}

func (repo *timetableRepository) FetchWeeklySlots(_ context.Context, classIDs []int64) ([]timetable.Slot, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	wanted := make(map[int64]bool, len(classIDs))
	for _, id := range classIDs {
		wanted[id] = true
	}
	slots := make([]timetable.Slot, 0)
	for _, s := range repo.db.table {
		if wanted[s.ClassID] {
			slots = append(slots, s)
		}
	}
	return slots, nil
}

func (repo *timetableRepository) CreateSlot(_ context.Context, s timetable.Slot) (timetable.Slot, error) {
	repo.classes.mutex.RLock()
	cls, ok := repo.classes.classes[s.ClassID]
	repo.classes.mutex.RUnlock()
	if !ok {
		return timetable.Slot{}, student.ErrClassNotFound
	}

	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pk++
	s.ID = repo.db.pk
	s.ClassName = cls.Name
	repo.db.table = append(repo.db.table, s)
	return s, nil
}

package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/hagwon/core/student"
	"github.com/trezcool/hagwon/core/timetable"
)

type timetableRepository struct {
	db *sqlx.DB
}

var _ timetable.Repository = (*timetableRepository)(nil) // interface compliance check

func NewTimetableRepository(db *sqlx.DB) *timetableRepository {
	return &timetableRepository{db: db}
}

func (repo timetableRepository) FetchWeeklySlots(ctx context.Context, classIDs []int64) ([]timetable.Slot, error) {
	slots := make([]timetable.Slot, 0)
	if len(classIDs) == 0 {
		return slots, nil
	}
	err := selectIn(ctx, repo.db, &slots, `
		SELECT t.id, t.class_id, c.name AS class_name, t.weekday, t.start_time, t.end_time,
		       t.subject, t.room, t.teacher_name, t.memo
		FROM timetables t
		JOIN classes c ON t.class_id = c.id
		WHERE t.class_id IN (?)
		ORDER BY t.weekday, t.start_time, t.id`, classIDs)
	if err != nil {
		return nil, errors.Wrap(err, "selecting timetables")
	}
	return slots, nil
}

func (repo timetableRepository) CreateSlot(ctx context.Context, s timetable.Slot) (timetable.Slot, error) {
	var name string
	err := repo.db.GetContext(ctx, &name, "SELECT name FROM classes WHERE id = $1", s.ClassID)
	if err == sql.ErrNoRows {
		return timetable.Slot{}, student.ErrClassNotFound
	} else if err != nil {
		return timetable.Slot{}, errors.Wrap(err, "selecting class")
	}

	id, err := insertReturningID(ctx, repo.db, `
		INSERT INTO timetables
		(class_id, weekday, start_time, end_time, subject, room, teacher_name, memo)
		VALUES (:class_id, :weekday, :start_time, :end_time, :subject, :room, :teacher_name, :memo)
		RETURNING id`, s)
	if err != nil {
		return timetable.Slot{}, errors.Wrap(err, "inserting timetable")
	}
	s.ID = id
	s.ClassName = name
	return s, nil
}

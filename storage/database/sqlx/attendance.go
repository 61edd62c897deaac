package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/attendance"
)

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *sqlx.DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

type eventRow struct {
	ID          int64      `db:"id"`
	StudentID   int64      `db:"student_id"`
	ClassID     null.Int64 `db:"class_id"`
	Date        string     `db:"date"`
	Status      string     `db:"status"`
	Homework    string     `db:"homework"`
	DailyTest   string     `db:"daily_test"`
	CheckinTime string     `db:"checkin_time"`
	Channel     string     `db:"channel"`
	RecordedBy  string     `db:"recorded_by"`
}

func (repo attendanceRepository) toRow(ev attendance.Event) eventRow {
	return eventRow{
		ID:          ev.ID,
		StudentID:   ev.StudentID,
		ClassID:     null.Int64FromPtr(ev.ClassID),
		Date:        ev.Date,
		Status:      string(ev.Status),
		Homework:    string(ev.Homework),
		DailyTest:   string(ev.DailyTest),
		CheckinTime: ev.CheckinTime,
		Channel:     string(ev.Channel),
		RecordedBy:  ev.RecordedBy,
	}
}

func (repo attendanceRepository) fromRow(row eventRow) attendance.Event {
	return attendance.Event{
		ID:          row.ID,
		StudentID:   row.StudentID,
		ClassID:     row.ClassID.Ptr(),
		Date:        row.Date,
		Status:      attendance.Status(row.Status),
		Homework:    attendance.Mark(row.Homework),
		DailyTest:   attendance.Mark(row.DailyTest),
		CheckinTime: row.CheckinTime,
		Channel:     attendance.Channel(row.Channel),
		RecordedBy:  row.RecordedBy,
	}
}

func (repo attendanceRepository) FetchAttendanceEvents(ctx context.Context, scope attendance.Scope, dates core.DateRange) ([]attendance.Event, error) {
	column, id := "class_id", scope.ClassID
	if scope.IsStudent() {
		column, id = "student_id", scope.StudentID
	}

	rows := make([]eventRow, 0)
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT id, student_id, class_id, to_char(date, 'YYYY-MM-DD') AS date, status,
		       homework, daily_test, checkin_time, channel, recorded_by
		FROM attendance
		WHERE `+column+` = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, id`,
		id, dates.FromString(), dates.ToString())
	if err != nil {
		return nil, errors.Wrap(err, "selecting attendance")
	}

	events := make([]attendance.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, repo.fromRow(row))
	}
	return events, nil
}

func (repo attendanceRepository) CreateEvent(ctx context.Context, ev attendance.Event) (attendance.Event, error) {
	id, err := insertReturningID(ctx, repo.db, `
		INSERT INTO attendance
		(student_id, class_id, date, status, homework, daily_test, checkin_time, channel, recorded_by)
		VALUES (:student_id, :class_id, :date, :status, :homework, :daily_test, :checkin_time, :channel, :recorded_by)
		RETURNING id`, repo.toRow(ev))
	if err != nil {
		return attendance.Event{}, errors.Wrap(err, "inserting attendance")
	}
	ev.ID = id
	return ev, nil
}

package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/hagwon/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

const studentColumns = "id, name, school, grade, parent_phone, memo"

func (repo studentRepository) FetchRoster(ctx context.Context) ([]student.Student, error) {
	roster := make([]student.Student, 0)
	err := repo.db.SelectContext(ctx, &roster, "SELECT "+studentColumns+" FROM students ORDER BY id")
	if err != nil {
		return nil, errors.Wrap(err, "selecting students")
	}
	return roster, nil
}

func (repo studentRepository) GetStudent(ctx context.Context, id int64) (student.Student, error) {
	var stu student.Student
	err := repo.db.GetContext(ctx, &stu, "SELECT "+studentColumns+" FROM students WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return student.Student{}, student.ErrNotFound
	} else if err != nil {
		return student.Student{}, errors.Wrap(err, "selecting student")
	}
	return stu, nil
}

func (repo studentRepository) FetchClassMembership(ctx context.Context, studentID int64) ([]student.ClassRef, error) {
	refs := make([]student.ClassRef, 0)
	err := repo.db.SelectContext(ctx, &refs, `
		SELECT c.id, c.name, c.level
		FROM class_students cs
		JOIN classes c ON cs.class_id = c.id
		WHERE cs.student_id = $1
		ORDER BY c.id`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "selecting class membership")
	}
	return refs, nil
}

func (repo studentRepository) FetchClassMembers(ctx context.Context, classID int64) ([]int64, error) {
	var found bool
	err := repo.db.GetContext(ctx, &found, "SELECT true FROM classes WHERE id = $1", classID)
	if err == sql.ErrNoRows {
		return nil, student.ErrClassNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "selecting class")
	}

	ids := make([]int64, 0)
	err = repo.db.SelectContext(ctx, &ids,
		"SELECT student_id FROM class_students WHERE class_id = $1 ORDER BY student_id", classID)
	if err != nil {
		return nil, errors.Wrap(err, "selecting class members")
	}
	return ids, nil
}

func (repo studentRepository) WriteStudentGrade(ctx context.Context, studentID int64, label string) error {
	res, err := repo.db.ExecContext(ctx, "UPDATE students SET grade = $1 WHERE id = $2", label, studentID)
	if err != nil {
		return errors.Wrap(err, "updating grade")
	}
	return checkAffected(res, student.ErrNotFound)
}

package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/hagwon/core/vocab"
)

type vocabRepository struct {
	db *sqlx.DB
}

var _ vocab.Repository = (*vocabRepository)(nil) // interface compliance check

func NewVocabRepository(db *sqlx.DB) *vocabRepository {
	return &vocabRepository{db: db}
}

type assignmentRow struct {
	ID         int64      `db:"id"`
	SetID      int64      `db:"set_id"`
	ClassID    null.Int64 `db:"class_id"`
	StudentID  null.Int64 `db:"student_id"`
	AssignedBy string     `db:"assigned_by"`
	AssignedAt time.Time  `db:"assigned_at"`
}

func (row assignmentRow) assignment() vocab.Assignment {
	return vocab.Assignment{
		ID:         row.ID,
		SetID:      row.SetID,
		ClassID:    row.ClassID.Ptr(),
		StudentID:  row.StudentID.Ptr(),
		AssignedBy: row.AssignedBy,
		AssignedAt: row.AssignedAt,
	}
}

const (
	setColumns  = "id, name, description, level, is_active, created_by, created_at"
	itemColumns = "id, set_id, word, meaning, part_of_speech, example_en, example_ko, tags, difficulty"
)

func (repo vocabRepository) FetchVocabAssignments(ctx context.Context, studentID int64, classIDs []int64) ([]vocab.Assignment, error) {
	rows := make([]assignmentRow, 0)
	var err error
	if len(classIDs) == 0 {
		err = repo.db.SelectContext(ctx, &rows, `
			SELECT id, set_id, class_id, student_id, assigned_by, assigned_at
			FROM vocab_assignments
			WHERE student_id = $1
			ORDER BY id`, studentID)
	} else {
		err = selectIn(ctx, repo.db, &rows, `
			SELECT id, set_id, class_id, student_id, assigned_by, assigned_at
			FROM vocab_assignments
			WHERE student_id = ? OR class_id IN (?)
			ORDER BY id`, studentID, classIDs)
	}
	if err != nil {
		return nil, errors.Wrap(err, "selecting assignments")
	}

	assignments := make([]vocab.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, row.assignment())
	}
	return assignments, nil
}

func (repo vocabRepository) FetchVocabItems(ctx context.Context, setID int64) ([]vocab.Item, error) {
	items := make([]vocab.Item, 0)
	err := repo.db.SelectContext(ctx, &items, "SELECT "+itemColumns+" FROM vocab_items WHERE set_id = $1 ORDER BY id", setID)
	if err != nil {
		return nil, errors.Wrap(err, "selecting items")
	}
	return items, nil
}

func (repo vocabRepository) GetSet(ctx context.Context, id int64) (vocab.Set, error) {
	var set vocab.Set
	err := repo.db.GetContext(ctx, &set, "SELECT "+setColumns+" FROM vocab_sets WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return vocab.Set{}, vocab.ErrSetNotFound
	} else if err != nil {
		return vocab.Set{}, errors.Wrap(err, "selecting set")
	}
	return set, nil
}

func (repo vocabRepository) GetSets(ctx context.Context, ids []int64) ([]vocab.Set, error) {
	sets := make([]vocab.Set, 0, len(ids))
	if len(ids) == 0 {
		return sets, nil
	}
	if err := selectIn(ctx, repo.db, &sets, "SELECT "+setColumns+" FROM vocab_sets WHERE id IN (?)", ids); err != nil {
		return nil, errors.Wrap(err, "selecting sets")
	}
	return sets, nil
}

func (repo vocabRepository) ListSets(ctx context.Context, activeOnly bool) ([]vocab.Set, error) {
	q := "SELECT " + setColumns + " FROM vocab_sets"
	if activeOnly {
		q += " WHERE is_active"
	}
	q += " ORDER BY created_at DESC, id DESC"

	sets := make([]vocab.Set, 0)
	if err := repo.db.SelectContext(ctx, &sets, q); err != nil {
		return nil, errors.Wrap(err, "selecting sets")
	}
	return sets, nil
}

func (repo vocabRepository) CreateSet(ctx context.Context, s vocab.Set) (vocab.Set, error) {
	id, err := insertReturningID(ctx, repo.db, `
		INSERT INTO vocab_sets (name, description, level, is_active, created_by, created_at)
		VALUES (:name, :description, :level, :is_active, :created_by, :created_at)
		RETURNING id`, s)
	if err != nil {
		return vocab.Set{}, errors.Wrap(err, "inserting set")
	}
	s.ID = id
	return s, nil
}

func (repo vocabRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := repo.db.ExecContext(ctx, "UPDATE vocab_sets SET is_active = $1 WHERE id = $2", active, id)
	if err != nil {
		return errors.Wrap(err, "updating set")
	}
	return checkAffected(res, vocab.ErrSetNotFound)
}

func (repo vocabRepository) CreateAssignment(ctx context.Context, a vocab.Assignment) (vocab.Assignment, error) {
	row := assignmentRow{
		SetID:      a.SetID,
		ClassID:    null.Int64FromPtr(a.ClassID),
		StudentID:  null.Int64FromPtr(a.StudentID),
		AssignedBy: a.AssignedBy,
		AssignedAt: a.AssignedAt,
	}
	id, err := insertReturningID(ctx, repo.db, `
		INSERT INTO vocab_assignments (set_id, class_id, student_id, assigned_by, assigned_at)
		VALUES (:set_id, :class_id, :student_id, :assigned_by, :assigned_at)
		RETURNING id`, row)
	if err != nil {
		return vocab.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	a.ID = id
	return a, nil
}

func (repo vocabRepository) AddItems(ctx context.Context, setID int64, items []vocab.NewItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	rows := make([]vocab.Item, 0, len(items))
	for _, it := range items {
		rows = append(rows, vocab.Item{
			SetID:        setID,
			Word:         it.Word,
			Meaning:      it.Meaning,
			PartOfSpeech: it.PartOfSpeech,
			ExampleEn:    it.ExampleEn,
			ExampleKo:    it.ExampleKo,
			Tags:         it.Tags,
			Difficulty:   it.Difficulty,
		})
	}

	// batch insert (sqlx expands the VALUES clause)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO vocab_items (set_id, word, meaning, part_of_speech, example_en, example_ko, tags, difficulty)
		VALUES (:set_id, :word, :meaning, :part_of_speech, :example_en, :example_ko, :tags, :difficulty)`, rows)
	if err != nil {
		return 0, errors.Wrap(err, "inserting items")
	}
	return len(rows), nil
}

func (repo vocabRepository) RecordQuizResult(ctx context.Context, r vocab.Result) (vocab.Result, error) {
	id, err := insertReturningID(ctx, repo.db, `
		INSERT INTO vocab_results (set_id, student_id, taken_at, mode, correct_count, total_count, percent)
		VALUES (:set_id, :student_id, :taken_at, :mode, :correct_count, :total_count, :percent)
		RETURNING id`, r)
	if err != nil {
		return vocab.Result{}, errors.Wrap(err, "inserting result")
	}
	r.ID = id
	return r, nil
}

func (repo vocabRepository) FetchResults(ctx context.Context, setID int64) ([]vocab.Result, error) {
	results := make([]vocab.Result, 0)
	err := repo.db.SelectContext(ctx, &results, `
		SELECT vr.id, vr.set_id, vr.student_id, COALESCE(s.name, '') AS student_name, vr.taken_at,
		       vr.mode, vr.correct_count, vr.total_count, vr.percent
		FROM vocab_results vr
		LEFT JOIN students s ON vr.student_id = s.id
		WHERE vr.set_id = $1
		ORDER BY vr.taken_at DESC, vr.id DESC`, setID)
	if err != nil {
		return nil, errors.Wrap(err, "selecting results")
	}
	return results, nil
}

package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/hagwon/core/vocab"
)

type vocabRepository struct {
	db       *vocabTable
	students *studentTable
}

var _ vocab.Repository = (*vocabRepository)(nil)

func NewVocabRepository(db *DB) *vocabRepository {
	return &vocabRepository{db: db.vocab, students: db.student}
}

func (repo *vocabRepository) FetchVocabAssignments(_ context.Context, studentID int64, classIDs []int64) ([]vocab.Assignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	inClass := make(map[int64]bool, len(classIDs))
	for _, id := range classIDs {
		inClass[id] = true
	}
	assignments := make([]vocab.Assignment, 0)
	for _, a := range repo.db.assignments {
		if (a.StudentID != nil && *a.StudentID == studentID) || (a.ClassID != nil && inClass[*a.ClassID]) {
			assignments = append(assignments, a)
		}
	}
	return assignments, nil
}

func (repo *vocabRepository) FetchVocabItems(_ context.Context, setID int64) ([]vocab.Item, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	items := make([]vocab.Item, 0)
	for _, it := range repo.db.items {
		if it.SetID == setID {
			items = append(items, it)
		}
	}
	return items, nil
}

func (repo *vocabRepository) GetSet(_ context.Context, id int64) (vocab.Set, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.db.sets[id]; ok {
		return *s, nil
	}
	return vocab.Set{}, vocab.ErrSetNotFound
}

func (repo *vocabRepository) GetSets(_ context.Context, ids []int64) ([]vocab.Set, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	sets := make([]vocab.Set, 0, len(ids))
	for _, id := range ids {
		if s, ok := repo.db.sets[id]; ok {
			sets = append(sets, *s)
		}
	}
	return sets, nil
}

func (repo *vocabRepository) ListSets(_ context.Context, activeOnly bool) ([]vocab.Set, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	sets := make([]vocab.Set, 0, len(repo.db.sets))
	for _, s := range repo.db.sets {
		if activeOnly && !s.IsActive {
			continue
		}
		sets = append(sets, *s)
	}
	sort.Slice(sets, func(i, j int) bool {
		if sets[i].CreatedAt.Equal(sets[j].CreatedAt) {
			return sets[i].ID > sets[j].ID
		}
		return sets[i].CreatedAt.After(sets[j].CreatedAt)
	})
	return sets, nil
}

func (repo *vocabRepository) CreateSet(_ context.Context, s vocab.Set) (vocab.Set, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.setPK++
	s.ID = repo.db.setPK
	repo.db.sets[s.ID] = &s
	return s, nil
}

func (repo *vocabRepository) SetActive(_ context.Context, id int64, active bool) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s, ok := repo.db.sets[id]
	if !ok {
		return vocab.ErrSetNotFound
	}
	s.IsActive = active
	return nil
}

func (repo *vocabRepository) CreateAssignment(_ context.Context, a vocab.Assignment) (vocab.Assignment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.sets[a.SetID]; !ok {
		return vocab.Assignment{}, vocab.ErrSetNotFound
	}
	repo.db.assignmentPK++
	a.ID = repo.db.assignmentPK
	repo.db.assignments = append(repo.db.assignments, a)
	return a, nil
}

func (repo *vocabRepository) AddItems(_ context.Context, setID int64, items []vocab.NewItem) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.sets[setID]; !ok {
		return 0, vocab.ErrSetNotFound
	}
	for _, ni := range items {
		repo.db.itemPK++
		repo.db.items = append(repo.db.items, vocab.Item{
			ID:           repo.db.itemPK,
			SetID:        setID,
			Word:         ni.Word,
			Meaning:      ni.Meaning,
			PartOfSpeech: ni.PartOfSpeech,
			ExampleEn:    ni.ExampleEn,
			ExampleKo:    ni.ExampleKo,
			Tags:         ni.Tags,
			Difficulty:   ni.Difficulty,
		})
	}
	return len(items), nil
}

func (repo *vocabRepository) RecordQuizResult(_ context.Context, r vocab.Result) (vocab.Result, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.resultPK++
	r.ID = repo.db.resultPK
	repo.db.results = append(repo.db.results, r)
	return r, nil
}

func (repo *vocabRepository) FetchResults(_ context.Context, setID int64) ([]vocab.Result, error) {
	repo.db.mutex.RLock()
	results := make([]vocab.Result, 0)
	for _, r := range repo.db.results {
		if r.SetID == setID {
			results = append(results, r)
		}
	}
	repo.db.mutex.RUnlock()

	repo.students.mutex.RLock()
	for i := range results {
		if stu, ok := repo.students.table[results[i].StudentID]; ok {
			results[i].StudentName = stu.Name
		}
	}
	repo.students.mutex.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].TakenAt.Equal(results[j].TakenAt) {
			return results[i].ID > results[j].ID
		}
		return results[i].TakenAt.After(results[j].TakenAt)
	})
	return results, nil
}

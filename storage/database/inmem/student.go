package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/hagwon/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) CreateStudent(_ context.Context, stu student.Student) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pk++
	stu.ID = repo.db.pk
	repo.db.table[stu.ID] = &stu
	return stu, nil
}

func (repo *studentRepository) CreateClass(_ context.Context, cls student.ClassGroup) (student.ClassGroup, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.classPK++
	cls.ID = repo.db.classPK
	repo.db.classes[cls.ID] = &cls
	return cls, nil
}

// AddClassMember is a no-op when the student already belongs to the class.
func (repo *studentRepository) AddClassMember(_ context.Context, classID, studentID int64) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[studentID]; !ok {
		return student.ErrNotFound
	}
	for _, id := range repo.db.members[classID] {
		if id == studentID {
			return nil
		}
	}
	repo.db.members[classID] = append(repo.db.members[classID], studentID)
	return nil
}

func (repo *studentRepository) DeleteStudent(_ context.Context, id int64) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return student.ErrNotFound
	}
	delete(repo.db.table, id)
	for classID, ids := range repo.db.members {
		kept := ids[:0]
		for _, sid := range ids {
			if sid != id {
				kept = append(kept, sid)
			}
		}
		repo.db.members[classID] = kept
	}
	return nil
}

func (repo *studentRepository) FetchRoster(context.Context) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	roster := make([]student.Student, 0, len(repo.db.table))
	for _, stu := range repo.db.table {
		roster = append(roster, *stu)
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].ID < roster[j].ID })
	return roster, nil
}

func (repo *studentRepository) GetStudent(_ context.Context, id int64) (student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if stu, ok := repo.db.table[id]; ok {
		return *stu, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) FetchClassMembership(_ context.Context, studentID int64) ([]student.ClassRef, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	refs := make([]student.ClassRef, 0)
	for classID, ids := range repo.db.members {
		cls, ok := repo.db.classes[classID]
		if !ok {
			continue
		}
		for _, id := range ids {
			if id == studentID {
				refs = append(refs, student.ClassRef{ID: cls.ID, Name: cls.Name, Level: cls.Level})
				break
			}
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs, nil
}

func (repo *studentRepository) FetchClassMembers(_ context.Context, classID int64) ([]int64, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if _, ok := repo.db.classes[classID]; !ok {
		return nil, student.ErrClassNotFound
	}
	ids := append([]int64{}, repo.db.members[classID]...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (repo *studentRepository) WriteStudentGrade(_ context.Context, studentID int64, label string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	stu, ok := repo.db.table[studentID]
	if !ok {
		return student.ErrNotFound
	}
	stu.Grade = label
	return nil
}

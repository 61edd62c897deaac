package inmemdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/attendance"
	"github.com/trezcool/hagwon/core/promotion"
	"github.com/trezcool/hagwon/core/student"
	"github.com/trezcool/hagwon/core/vocab"
)

func TestStudentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(Open())

	ann, _ := repo.CreateStudent(ctx, student.Student{Name: "Ann", Grade: "초3"})
	bob, _ := repo.CreateStudent(ctx, student.Student{Name: "Bob", Grade: "중1"})
	math, _ := repo.CreateClass(ctx, student.ClassGroup{Name: "Math", Level: "초"})
	eng, _ := repo.CreateClass(ctx, student.ClassGroup{Name: "English"})

	require.NoError(t, repo.AddClassMember(ctx, eng.ID, ann.ID))
	require.NoError(t, repo.AddClassMember(ctx, math.ID, ann.ID))
	require.NoError(t, repo.AddClassMember(ctx, math.ID, ann.ID)) // twice
	require.NoError(t, repo.AddClassMember(ctx, math.ID, bob.ID))
	assert.Equal(t, student.ErrNotFound, repo.AddClassMember(ctx, math.ID, 42))

	refs, err := repo.FetchClassMembership(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, []student.ClassRef{{ID: math.ID, Name: "Math", Level: "초"}, {ID: eng.ID, Name: "English"}}, refs)

	members, err := repo.FetchClassMembers(ctx, math.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{ann.ID, bob.ID}, members)
	_, err = repo.FetchClassMembers(ctx, 42)
	assert.Equal(t, student.ErrClassNotFound, err)

	require.NoError(t, repo.WriteStudentGrade(ctx, bob.ID, "중2"))
	assert.Equal(t, student.ErrNotFound, repo.WriteStudentGrade(ctx, 42, "중2"))

	roster, err := repo.FetchRoster(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "중2", roster[1].Grade)

	require.NoError(t, repo.DeleteStudent(ctx, ann.ID))
	members, _ = repo.FetchClassMembers(ctx, math.ID)
	assert.Equal(t, []int64{bob.ID}, members)
	_, err = repo.GetStudent(ctx, ann.ID)
	assert.Equal(t, student.ErrNotFound, err)
}

func TestAttendanceRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(Open())
	classID := int64(3)

	for _, ev := range []attendance.Event{
		{StudentID: 1, Date: "2024-02-29", Status: attendance.StatusLate},
		{StudentID: 1, Date: "2024-03-01", Status: attendance.StatusLate, ClassID: &classID},
		{StudentID: 2, Date: "2024-03-31", Status: attendance.StatusPresent, ClassID: &classID},
		{StudentID: 1, Date: "2024-04-01", Status: attendance.StatusPresent},
	} {
		_, err := repo.CreateEvent(ctx, ev)
		require.NoError(t, err)
	}

	march := core.MonthRange(2024, time.March)
	events, err := repo.FetchAttendanceEvents(ctx, attendance.StudentScope(1), march)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "2024-03-01", events[0].Date)

	events, err = repo.FetchAttendanceEvents(ctx, attendance.ClassScope(classID), march)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(Open())

	m, err := repo.ReadPromotionMarker(ctx)
	require.NoError(t, err)
	assert.Nil(t, m)

	require.NoError(t, repo.WritePromotionMarker(ctx, 2024))
	m, err = repo.ReadPromotionMarker(ctx)
	require.NoError(t, err)
	assert.Equal(t, promotion.MarkerKey, m.Key)
	assert.Equal(t, "2024", m.Value)
}

func TestVocabRepository(t *testing.T) {
	ctx := context.Background()
	db := Open()
	repo := NewVocabRepository(db)
	students := NewStudentRepository(db)
	ann, _ := students.CreateStudent(ctx, student.Student{Name: "Ann"})

	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	old, _ := repo.CreateSet(ctx, vocab.Set{Name: "old", IsActive: true, CreatedAt: t0})
	newer, _ := repo.CreateSet(ctx, vocab.Set{Name: "new", IsActive: true, CreatedAt: t0.Add(time.Hour)})
	off, _ := repo.CreateSet(ctx, vocab.Set{Name: "off", IsActive: true, CreatedAt: t0.Add(2 * time.Hour)})
	require.NoError(t, repo.SetActive(ctx, off.ID, false))

	sets, err := repo.ListSets(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, []string{sets[0].Name, sets[1].Name})
	sets, _ = repo.ListSets(ctx, false)
	assert.Len(t, sets, 3)

	sets, err = repo.GetSets(ctx, []int64{newer.ID, 42, old.ID})
	require.NoError(t, err)
	assert.Equal(t, []int64{newer.ID, old.ID}, []int64{sets[0].ID, sets[1].ID})

	n, err := repo.AddItems(ctx, old.ID, []vocab.NewItem{{Word: "a", Meaning: "b"}, {Word: "c", Meaning: "d"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	_, err = repo.AddItems(ctx, 42, nil)
	assert.Equal(t, vocab.ErrSetNotFound, err)
	items, _ := repo.FetchVocabItems(ctx, old.ID)
	assert.Equal(t, "a", items[0].Word)

	classID := int64(5)
	_, _ = repo.CreateAssignment(ctx, vocab.Assignment{SetID: old.ID, ClassID: &classID})
	_, _ = repo.CreateAssignment(ctx, vocab.Assignment{SetID: newer.ID, StudentID: &ann.ID})
	_, err = repo.CreateAssignment(ctx, vocab.Assignment{SetID: 42, StudentID: &ann.ID})
	assert.Equal(t, vocab.ErrSetNotFound, err)

	assignments, _ := repo.FetchVocabAssignments(ctx, ann.ID, nil)
	assert.Len(t, assignments, 1)
	assignments, _ = repo.FetchVocabAssignments(ctx, ann.ID, []int64{classID})
	assert.Len(t, assignments, 2)

	_, _ = repo.RecordQuizResult(ctx, vocab.Result{SetID: old.ID, StudentID: ann.ID, TakenAt: t0})
	_, _ = repo.RecordQuizResult(ctx, vocab.Result{SetID: old.ID, StudentID: ann.ID, TakenAt: t0.Add(time.Minute)})
	_, _ = repo.RecordQuizResult(ctx, vocab.Result{SetID: newer.ID, StudentID: ann.ID, TakenAt: t0})
	results, err := repo.FetchResults(ctx, old.ID)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(2), results[0].ID)
	assert.Equal(t, "Ann", results[0].StudentName)
}

func TestQuizStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	mockNow := func(t time.Time) { nowFunc = func() time.Time { return t } }
	defer func() { nowFunc = time.Now }()

	store := NewQuizStore(time.Hour)
	mockNow(now.Add(-3 * time.Hour))
	require.NoError(t, store.SaveQuiz(ctx, vocab.Quiz{ID: "stale2"}))
	mockNow(now.Add(-2 * time.Hour))
	require.NoError(t, store.SaveQuiz(ctx, vocab.Quiz{ID: "stale"}))
	mockNow(now.Add(-time.Minute))
	// the quiz's own timestamp does not matter, only when it was saved
	require.NoError(t, store.SaveQuiz(ctx, vocab.Quiz{ID: "fresh", CreatedAt: now.AddDate(-5, 0, 0)}))
	mockNow(now)

	q, err := store.TakeQuiz(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, "fresh", q.ID)

	_, err = store.TakeQuiz(ctx, "fresh")
	assert.Equal(t, vocab.ErrQuizNotFound, err, "single use")
	_, err = store.TakeQuiz(ctx, "stale")
	assert.Equal(t, vocab.ErrQuizNotFound, err, "expired")
	_, err = store.TakeQuiz(ctx, "unknown")
	assert.Equal(t, vocab.ErrQuizNotFound, err)

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, store.Purge())
	assert.Zero(t, store.Len())

	t.Run("no ttl", func(t *testing.T) {
		store := NewQuizStore(0)
		mockNow(now.AddDate(-1, 0, 0))
		require.NoError(t, store.SaveQuiz(ctx, vocab.Quiz{ID: "old"}))
		mockNow(now)
		assert.Zero(t, store.Purge())
		_, err := store.TakeQuiz(ctx, "old")
		assert.NoError(t, err)
	})
}

package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/hagwon/core/vocab"
	testutil "github.com/trezcool/hagwon/tests"
)

var meanings = map[string]string{
	"abandon":  "버리다",
	"benefit":  "이익",
	"candid":   "솔직한",
	"diligent": "부지런한",
	"eager":    "열망하는",
}

func TestVocabAPI(t *testing.T) {
	f := setup(t)
	cls := testutil.CreateClass(t, f.students, "A")
	ann := testutil.CreateStudent(t, f.students, "Ann", "중1", cls.ID)

	var set vocab.Set
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/v1/vocab-sets", vocab.NewSet{Name: " Week 1 "}, &set))
	assert.Equal(t, "Week 1", set.Name)
	assert.True(t, set.IsActive)

	var fields map[string]string
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/v1/vocab-sets", vocab.NewSet{Name: "  "}, &fields))
	assert.Contains(t, fields, "name")

	var sets []vocab.Set
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/v1/vocab-sets?active=true", nil, &sets))
	assert.Len(t, sets, 1)

	t.Run("bulk import", func(t *testing.T) {
		text := "abandon\t버리다\nbenefit / 이익\n\n# comment\ncandid\t솔직한\ndiligent\t부지런한\neager\t열망하는\n"
		var resp struct {
			Imported int `json:"imported"`
		}
		require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/v1/vocab-sets/1/items/bulk", text, &resp))
		assert.Equal(t, 5, resp.Imported)

		assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/v1/vocab-sets/1/items/bulk", "no separator here", &fields))
		assert.Contains(t, fields, "text")

		var herr httpErr
		assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/v1/vocab-sets/42/items/bulk", text, &herr))
		assert.Equal(t, vocab.ErrSetNotFound.Error(), herr.Error)
	})

	t.Run("assign", func(t *testing.T) {
		var a vocab.Assignment
		require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/v1/vocab-sets/1/assignments", map[string]int64{"class_id": cls.ID}, &a))
		require.NotNil(t, a.ClassID)
		assert.Nil(t, a.StudentID)

		assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/v1/vocab-sets/1/assignments",
			map[string]int64{"class_id": cls.ID, "student_id": ann.ID}, &fields))
		assert.Contains(t, fields, "class_id")

		var herr httpErr
		assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/v1/vocab-sets/1/assignments", map[string]int64{"class_id": 42}, &herr))

		require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/v1/students/1/vocab-sets", nil, &sets))
		require.Len(t, sets, 1)
		assert.Equal(t, set.ID, sets[0].ID)
	})

	t.Run("quiz", func(t *testing.T) {
		var quiz map[string]interface{}
		require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/v1/students/1/vocab-sets/1/quizzes", map[string]int{"num_questions": 4}, &quiz))

		questions := quiz["questions"].([]interface{})
		require.Len(t, questions, 4)
		answers := make([]string, 0, len(questions))
		for i, q := range questions {
			q := q.(map[string]interface{})
			assert.NotContains(t, q, "CorrectIndex")
			assert.Len(t, q["options"], vocab.DistractorCount+1)
			if i == 0 {
				answers = append(answers, "wrong")
			} else {
				answers = append(answers, meanings[q["word"].(string)])
			}
		}

		path := "/v1/quizzes/" + quiz["id"].(string) + "/answers"
		var res vocab.Result
		require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, path, map[string][]string{"answers": answers}, &res))
		assert.Equal(t, 3, res.CorrectCount)
		assert.Equal(t, 4, res.TotalCount)
		assert.Equal(t, 75.0, res.Percent)
		assert.Equal(t, ann.ID, res.StudentID)

		var herr httpErr
		assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, path, map[string][]string{"answers": answers}, &herr))
		assert.Equal(t, vocab.ErrQuizNotFound.Error(), herr.Error)

		// default size is capped by the number of items
		require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/v1/students/1/vocab-sets/1/quizzes", nil, &quiz))
		assert.Len(t, quiz["questions"], len(meanings))

		assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/v1/students/1/vocab-sets/1/quizzes", map[string]int{"num_questions": 50}, &herr))

		var results []vocab.Result
		require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/v1/vocab-sets/1/results", nil, &results))
		require.Len(t, results, 1)
		assert.Equal(t, "Ann", results[0].StudentName)
	})

	t.Run("unassigned set", func(t *testing.T) {
		var other vocab.Set
		require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/v1/vocab-sets", vocab.NewSet{Name: "Week 2"}, &other))
		require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/v1/vocab-sets/2/items/bulk", "abandon\t버리다\nbenefit\t이익\n", nil))

		var herr httpErr
		assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/v1/students/1/vocab-sets/2/quizzes", nil, &herr))
		assert.Equal(t, vocab.ErrSetNotFound.Error(), herr.Error)
	})

	t.Run("deactivate", func(t *testing.T) {
		var updated vocab.Set
		require.Equal(t, http.StatusOK, f.do(t, http.MethodPatch, "/v1/vocab-sets/1", map[string]bool{"is_active": false}, &updated))
		assert.False(t, updated.IsActive)

		require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/v1/students/1/vocab-sets", nil, &sets))
		assert.Empty(t, sets)

		var herr httpErr
		assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/v1/students/1/vocab-sets/1/quizzes", nil, &herr))
		assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPatch, "/v1/vocab-sets/42", map[string]bool{"is_active": false}, &herr))

		fields := map[string]string{}
		assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPatch, "/v1/vocab-sets/1", map[string]string{}, &fields))
		assert.Contains(t, fields, "is_active")

		require.Equal(t, http.StatusOK, f.do(t, http.MethodPatch, "/v1/vocab-sets/1", map[string]bool{"is_active": true}, &updated))
		require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/v1/students/1/vocab-sets", nil, &sets))
		assert.Len(t, sets, 1)
	})
}

package promotion_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/hagwon/core/promotion"
	inmemdb "github.com/trezcool/hagwon/storage/database/inmem"
	testutil "github.com/trezcool/hagwon/tests"
)

func TestEngine_yearByYear(t *testing.T) {
	ctx := context.Background()
	db := inmemdb.Open()
	students := inmemdb.NewStudentRepository(db)
	engine := promotion.NewEngine(students, inmemdb.NewSettingsRepository(db), testutil.Logger{T: t})

	stu := testutil.CreateStudent(t, students, "Ann", "초1")

	out, err := engine.MaybePromote(ctx, 2020)
	require.NoError(t, err)
	assert.Equal(t, promotion.Initialized, out.Kind)

	want := []string{"초2", "초3", "초4", "초5", "초6", "중1", "중2", "중3", "고1", "고2", "고3", "졸업", "졸업"}
	for i, label := range want {
		year := 2021 + i
		out, err := engine.MaybePromote(ctx, year)
		require.NoError(t, err)
		out2, err := engine.MaybePromote(ctx, year)
		require.NoError(t, err)
		assert.Equal(t, promotion.Skipped, out2.Kind)

		got, err := students.GetStudent(ctx, stu.ID)
		require.NoError(t, err)
		assert.Equal(t, label, got.Grade, "year %d", year)
		assert.Equal(t, promotion.Promoted, out.Kind)
	}
}

package vocab

import (
	"math/rand"
	"time"
)

// MockRandom makes quizzes generated by services reproducible. It returns a restore function.
func MockRandom(seed int64, now time.Time, quizID string) func() {
	origRand, origNow, origID := randFunc, nowFunc, newQuizID
	randFunc = func() *rand.Rand { return rand.New(rand.NewSource(seed)) }
	nowFunc = func() time.Time { return now }
	newQuizID = func() string { return quizID }
	return func() { randFunc, nowFunc, newQuizID = origRand, origNow, origID }
}

package inmemdb

import (
	"context"
	"sync"
	"time"

	"github.com/trezcool/hagwon/core/vocab"
)

var nowFunc = time.Now // mockable

type (
	pendingQuiz struct {
		quiz    vocab.Quiz
		savedAt time.Time
	}

	quizStore struct {
		ttl     time.Duration
		quizzes map[string]pendingQuiz
		mutex   sync.RWMutex
	}
)

var _ vocab.QuizStore = (*quizStore)(nil)

// NewQuizStore keeps quizzes in memory for ttl (forever if ttl <= 0).
// Expiry is measured from the time the quiz was saved, on the store's own clock.
func NewQuizStore(ttl time.Duration) *quizStore {
	return &quizStore{ttl: ttl, quizzes: make(map[string]pendingQuiz)}
}

func (s *quizStore) expired(p pendingQuiz, now time.Time) bool {
	return s.ttl > 0 && now.Sub(p.savedAt) > s.ttl
}

func (s *quizStore) SaveQuiz(_ context.Context, q vocab.Quiz) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.quizzes[q.ID] = pendingQuiz{quiz: q, savedAt: nowFunc()}
	return nil
}

func (s *quizStore) TakeQuiz(_ context.Context, id string) (vocab.Quiz, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	p, ok := s.quizzes[id]
	if !ok {
		return vocab.Quiz{}, vocab.ErrQuizNotFound
	}
	delete(s.quizzes, id)
	if s.expired(p, nowFunc()) {
		return vocab.Quiz{}, vocab.ErrQuizNotFound
	}
	return p.quiz, nil
}

// Purge drops expired quizzes and returns how many were dropped.
func (s *quizStore) Purge() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := nowFunc()
	var n int
	for id, p := range s.quizzes {
		if s.expired(p, now) {
			delete(s.quizzes, id)
			n++
		}
	}
	return n
}

// Len returns the number of pending quizzes.
func (s *quizStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.quizzes)
}

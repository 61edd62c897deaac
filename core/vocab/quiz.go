package vocab

import (
	"fmt"
	"math/rand"

	"github.com/trezcool/hagwon/core"
)

// DistractorCount is the number of wrong options of a question when the set is large enough.
const DistractorCount = 3

// GenerateQuiz builds n multiple-choice questions from n distinct random items.
// Wrong options are distinct meanings of other items, never equal to the correct one, so every
// option list holds the correct meaning exactly once.
func GenerateQuiz(rng *rand.Rand, items []Item, n int) ([]Question, error) {
	if n < 1 || n > len(items) {
		return nil, core.NewArgumentError(fmt.Sprintf("number of questions must be between 1 and %d, got %d", len(items), n))
	}

	meanings := distinctMeanings(items)
	questions := make([]Question, 0, n)
	for _, idx := range rng.Perm(len(items))[:n] {
		item := items[idx]

		pool := make([]string, 0, len(meanings))
		for _, m := range meanings {
			if m != item.Meaning {
				pool = append(pool, m)
			}
		}
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		if len(pool) > DistractorCount {
			pool = pool[:DistractorCount]
		}

		options := append(pool, item.Meaning)
		rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

		q := Question{ItemID: item.ID, Word: item.Word, Options: options}
		for i, opt := range options {
			if opt == item.Meaning {
				q.CorrectIndex = i
				break
			}
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func distinctMeanings(items []Item) []string {
	seen := make(map[string]bool, len(items))
	meanings := make([]string, 0, len(items))
	for _, it := range items {
		if !seen[it.Meaning] {
			seen[it.Meaning] = true
			meanings = append(meanings, it.Meaning)
		}
	}
	return meanings
}

// Score compares answers to questions by position. Missing answers are wrong.
func Score(questions []Question, answers []string) (correct, total int, percent float64) {
	total = len(questions)
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer() {
			correct++
		}
	}
	if total > 0 {
		percent = 100 * float64(correct) / float64(total)
	}
	return correct, total, percent
}

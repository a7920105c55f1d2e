package game

import "strings"

// Verdict is the outcome of evaluating one guess.
type Verdict struct {
	Correct bool
	Score   int
}

// Normalize prepares a guess for comparison: answers are matched
// case-insensitively after trimming whitespace. Stored answer titles go
// through the same function so the audit rows match the guessed set.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Evaluate decides a normalized guess against the hidden answer map and
// the set of answers already guessed. A repeat of an already-guessed
// answer is incorrect, not an error. Pure: all side effects (scoring,
// attempt bookkeeping, persistence) belong to the caller.
func Evaluate(guess string, answers map[string]int, guessed map[string]bool) Verdict {
	score, ok := answers[guess]
	if !ok || guessed[guess] {
		return Verdict{}
	}
	return Verdict{Correct: true, Score: score}
}

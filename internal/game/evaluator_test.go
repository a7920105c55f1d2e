package game

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase passthrough", "paris", "paris"},
		{"uppercase folded", "PARIS", "paris"},
		{"mixed case", "PaRiS", "paris"},
		{"surrounding whitespace", "  paris \n", "paris"},
		{"case and whitespace", "  London ", "london"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	answers := map[string]int{
		"paris":  40,
		"london": 30,
		"berlin": 15,
	}

	tests := []struct {
		name    string
		guess   string
		guessed map[string]bool
		want    Verdict
	}{
		{
			name:  "correct fresh answer",
			guess: "paris",
			want:  Verdict{Correct: true, Score: 40},
		},
		{
			name:  "not in the answer set",
			guess: "madrid",
			want:  Verdict{},
		},
		{
			name:    "repeat of a guessed answer",
			guess:   "paris",
			guessed: map[string]bool{"paris": true},
			want:    Verdict{},
		},
		{
			name:    "fresh answer while another is guessed",
			guess:   "london",
			guessed: map[string]bool{"paris": true},
			want:    Verdict{Correct: true, Score: 30},
		},
		{
			name:  "empty guess",
			guess: "",
			want:  Verdict{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.guess, answers, tt.guessed); got != tt.want {
				t.Errorf("Evaluate(%q) = %+v, want %+v", tt.guess, got, tt.want)
			}
		})
	}
}

func TestEvaluate_DoesNotMutateInputs(t *testing.T) {
	answers := map[string]int{"paris": 40}
	guessed := map[string]bool{}

	Evaluate("paris", answers, guessed)

	if len(guessed) != 0 {
		t.Errorf("guessed set was mutated: %v", guessed)
	}
	if answers["paris"] != 40 {
		t.Errorf("answer map was mutated: %v", answers)
	}
}

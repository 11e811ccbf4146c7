package models

import "testing"

func TestQuizQuestion_Option(t *testing.T) {
	q := QuizQuestion{OptionA: "first", OptionB: "second", OptionC: "third", OptionD: "fourth"}

	cases := map[AnswerLabel]string{
		AnswerA: "first",
		AnswerB: "second",
		AnswerC: "third",
		AnswerD: "fourth",
	}
	for label, want := range cases {
		if got := q.Option(label); got != want {
			t.Errorf("Option(%s) = %q, want %q", label, got, want)
		}
	}

	if got := q.Option("E"); got != "" {
		t.Errorf("Option(E) = %q, want empty", got)
	}
}

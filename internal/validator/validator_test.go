package validator

import "testing"

func TestValidator_AnswerLabel(t *testing.T) {
	v := New()

	for _, label := range []string{"A", "B", "C", "D"} {
		if err := v.Validate(&QuizAnswer{ID: 1, Answer: label}); err != nil {
			t.Errorf("label %q should be valid: %v", label, err)
		}
	}

	for _, label := range []string{"E", "a", "AB", ""} {
		if err := v.Validate(&QuizAnswer{ID: 1, Answer: label}); err == nil {
			t.Errorf("label %q should be rejected", label)
		}
	}
}

func TestValidator_SignupRequest(t *testing.T) {
	v := New()

	valid := &SignupRequest{Email: "a@example.com", Password: "longenough", DisplayName: "A"}
	if err := v.Validate(valid); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	cases := map[string]*SignupRequest{
		"bad email":      {Email: "nope", Password: "longenough", DisplayName: "A"},
		"short password": {Email: "a@example.com", Password: "abc", DisplayName: "A"},
		"no name":        {Email: "a@example.com", Password: "longenough"},
	}
	for name, req := range cases {
		if err := v.Validate(req); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestValidator_QuizSubmitRequest_DivesIntoAnswers(t *testing.T) {
	v := New()

	req := &QuizSubmitRequest{
		CourseID: 1,
		Answers: []QuizAnswer{
			{ID: 1, Answer: "A"},
			{ID: 2, Answer: "Z"},
		},
	}
	if err := v.Validate(req); err == nil {
		t.Error("expected nested answer validation to fail")
	}
}

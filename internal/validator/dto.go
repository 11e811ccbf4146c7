package validator

// SignupRequest is the payload for POST /auth/signup.
type SignupRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=6,max=128"`
	DisplayName string `json:"displayName" validate:"required,max=100"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// NoteCreateRequest is the payload for POST /notes/create.
type NoteCreateRequest struct {
	VideoID uint   `json:"videoId" validate:"required"`
	Content string `json:"content" validate:"required,min=1"`
}

// NoteUpdateRequest is the payload for PUT /notes/:noteId.
type NoteUpdateRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

// QuizAnswer pairs a question id with the chosen option label.
type QuizAnswer struct {
	ID     uint   `json:"id" validate:"required"`
	Answer string `json:"answer" validate:"required,answer_label"`
}

// QuizSubmitRequest is the payload for POST /quiz/submit.
type QuizSubmitRequest struct {
	CourseID uint         `json:"courseId" validate:"required"`
	Answers  []QuizAnswer `json:"answers" validate:"dive"`
}

package services

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/courseloop/learning-service/internal/config"
	"github.com/courseloop/learning-service/internal/events"
	"github.com/courseloop/learning-service/internal/models"
	"github.com/courseloop/learning-service/internal/repositories"
	"github.com/courseloop/learning-service/internal/validator"
)

// fakeRepo is an in-memory Repository for service tests. It mirrors the
// conditional-write semantics of the postgres repositories.
type fakeRepo struct {
	mu sync.Mutex

	users     map[uint]*models.User
	courses   map[uint]*models.Course
	videos    map[uint]*models.Video
	notes     map[uint]*models.Note
	questions []*models.QuizQuestion
	scores    []*models.Score

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:   make(map[uint]*models.User),
		courses: make(map[uint]*models.Course),
		videos:  make(map[uint]*models.Video),
		notes:   make(map[uint]*models.Note),
	}
}

func (r *fakeRepo) id() uint {
	r.nextID++
	return r.nextID
}

// Seed helpers

func (r *fakeRepo) addUser(email, displayName string) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	user := &models.User{ID: r.id(), Email: email, DisplayName: displayName, CreatedAt: time.Now()}
	r.users[user.ID] = user
	return user
}

func (r *fakeRepo) addCourse(title string) *models.Course {
	r.mu.Lock()
	defer r.mu.Unlock()
	course := &models.Course{ID: r.id(), Title: title}
	r.courses[course.ID] = course
	return course
}

func (r *fakeRepo) addVideo(courseID uint, title string) *models.Video {
	r.mu.Lock()
	defer r.mu.Unlock()
	video := &models.Video{ID: r.id(), CourseID: courseID, Title: title}
	r.videos[video.ID] = video
	return video
}

func (r *fakeRepo) addQuestion(courseID uint, question string, answer models.AnswerLabel) *models.QuizQuestion {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := &models.QuizQuestion{
		ID: r.id(), CourseID: courseID, Question: question,
		OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d",
		Answer: answer,
	}
	r.questions = append(r.questions, q)
	return q
}

func (r *fakeRepo) addScore(userID, courseID uint, value int, createdAt time.Time) *models.Score {
	r.mu.Lock()
	defer r.mu.Unlock()
	score := &models.Score{ID: r.id(), UserID: userID, CourseID: courseID, Value: value, CreatedAt: createdAt}
	r.scores = append(r.scores, score)
	return score
}

// Repository interface

func (r *fakeRepo) User() repositories.UserRepository     { return &fakeUserRepo{r} }
func (r *fakeRepo) Course() repositories.CourseRepository { return &fakeCourseRepo{r} }
func (r *fakeRepo) Note() repositories.NoteRepository     { return &fakeNoteRepo{r} }
func (r *fakeRepo) Quiz() repositories.QuizRepository     { return &fakeQuizRepo{r} }
func (r *fakeRepo) Score() repositories.ScoreRepository   { return &fakeScoreRepo{r} }

func (r *fakeRepo) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}
func (r *fakeRepo) Ping(ctx context.Context) error { return nil }
func (r *fakeRepo) Close() error                   { return nil }

type fakeUserRepo struct{ r *fakeRepo }

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, existing := range f.r.users {
		if existing.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = f.r.id()
	user.CreatedAt = time.Now()
	f.r.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	user, ok := f.r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, user := range f.r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

type fakeCourseRepo struct{ r *fakeRepo }

func (f *fakeCourseRepo) List(_ context.Context) ([]*models.Course, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	out := make([]*models.Course, 0, len(f.r.courses))
	for _, course := range f.r.courses {
		out = append(out, course)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id uint) (*models.Course, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	course, ok := f.r.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return course, nil
}

type fakeNoteRepo struct{ r *fakeRepo }

func (f *fakeNoteRepo) Create(_ context.Context, note *models.Note) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	note.ID = f.r.id()
	note.CreatedAt = time.Now()
	stored := *note
	f.r.notes[note.ID] = &stored
	return nil
}

func (f *fakeNoteRepo) GetByID(_ context.Context, id uint) (*models.Note, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	note, ok := f.r.notes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *note
	return &out, nil
}

func (f *fakeNoteRepo) GetByShareToken(_ context.Context, token string) (*models.Note, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, note := range f.r.notes {
		if note.ShareToken != nil && *note.ShareToken == token {
			out := *note
			if user, ok := f.r.users[note.UserID]; ok {
				out.User = *user
			}
			if video, ok := f.r.videos[note.VideoID]; ok {
				out.Video = *video
				if course, ok := f.r.courses[video.CourseID]; ok {
					out.Video.Course = *course
				}
			}
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeNoteRepo) ListByOwner(_ context.Context, userID uint) ([]*models.Note, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var out []*models.Note
	for _, note := range f.r.notes {
		if note.UserID == userID {
			copied := *note
			out = append(out, &copied)
		}
	}
	sortNotesNewestFirst(out)
	return out, nil
}

func (f *fakeNoteRepo) ListByOwnerAndVideo(_ context.Context, userID, videoID uint) ([]*models.Note, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var out []*models.Note
	for _, note := range f.r.notes {
		if note.UserID == userID && note.VideoID == videoID {
			copied := *note
			out = append(out, &copied)
		}
	}
	sortNotesNewestFirst(out)
	return out, nil
}

// Owned listings return the most recent note first, like the SQL
// created_at DESC ordering. IDs break ties on coarse clocks.
func sortNotesNewestFirst(notes []*models.Note) {
	sort.Slice(notes, func(i, j int) bool {
		if !notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].CreatedAt.After(notes[j].CreatedAt)
		}
		return notes[i].ID > notes[j].ID
	})
}

func (f *fakeNoteRepo) ListPublicByVideo(_ context.Context, videoID uint) ([]*models.Note, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var out []*models.Note
	for _, note := range f.r.notes {
		if note.VideoID == videoID && note.Readable() {
			copied := *note
			if user, ok := f.r.users[note.UserID]; ok {
				copied.User = *user
			}
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := 0.0, 0.0
		if out[i].Rating != nil {
			ri = *out[i].Rating
		}
		if out[j].Rating != nil {
			rj = *out[j].Rating
		}
		return ri > rj
	})
	return out, nil
}

func (f *fakeNoteRepo) UpdateContent(_ context.Context, id, ownerID uint, content string) (int64, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	note, ok := f.r.notes[id]
	if !ok || note.UserID != ownerID {
		return 0, nil
	}
	note.Content = content
	note.UpdatedAt = time.Now()
	return 1, nil
}

func (f *fakeNoteRepo) Delete(_ context.Context, id, ownerID uint) (int64, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	note, ok := f.r.notes[id]
	if !ok || note.UserID != ownerID {
		return 0, nil
	}
	delete(f.r.notes, id)
	return 1, nil
}

func (f *fakeNoteRepo) MakePublic(_ context.Context, id, ownerID uint, rating float64) (int64, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	note, ok := f.r.notes[id]
	if !ok || note.UserID != ownerID || note.Visibility != models.NotePrivate {
		return 0, nil
	}
	note.Visibility = models.NotePublic
	note.Rating = &rating
	return 1, nil
}

func (f *fakeNoteRepo) SetShareToken(_ context.Context, id, ownerID uint, token string) (int64, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	note, ok := f.r.notes[id]
	if !ok || note.UserID != ownerID || note.ShareToken != nil {
		return 0, nil
	}
	note.Visibility = models.NoteShared
	note.ShareToken = &token
	return 1, nil
}

type fakeQuizRepo struct{ r *fakeRepo }

func (f *fakeQuizRepo) ListByCourse(_ context.Context, courseID uint) ([]*models.QuizQuestion, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var out []*models.QuizQuestion
	for _, q := range f.r.questions {
		if q.CourseID == courseID {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeScoreRepo struct{ r *fakeRepo }

func (f *fakeScoreRepo) Create(_ context.Context, score *models.Score) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	score.ID = f.r.id()
	if score.CreatedAt.IsZero() {
		score.CreatedAt = time.Now()
	}
	stored := *score
	f.r.scores = append(f.r.scores, &stored)
	return nil
}

func (f *fakeScoreRepo) ListByUser(_ context.Context, userID uint) ([]*models.Score, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var out []*models.Score
	for _, score := range f.r.scores {
		if score.UserID == userID {
			copied := *score
			if course, ok := f.r.courses[score.CourseID]; ok {
				copied.Course = *course
			}
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeScoreRepo) TopByCourse(_ context.Context, courseID uint, limit int) ([]*repositories.LeaderboardEntry, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var entries []*repositories.LeaderboardEntry
	for _, score := range f.r.scores {
		if score.CourseID != courseID {
			continue
		}
		name := ""
		if user, ok := f.r.users[score.UserID]; ok {
			name = user.PublicName()
		}
		entries = append(entries, &repositories.LeaderboardEntry{
			ScoreID:   score.ID,
			UserID:    score.UserID,
			UserName:  name,
			Value:     score.Value,
			CreatedAt: score.CreatedAt,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Shared test fixtures

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
}

type noteTestEnv struct {
	repo      *fakeRepo
	publisher *events.MockEventPublisher
	svc       NoteService
}

func newNoteTestEnv(t *testing.T) *noteTestEnv {
	t.Helper()
	repo := newFakeRepo()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewNoteService(repo, testLogger(), validator.New(), publisher, "http://localhost:3000/shared/")
	return &noteTestEnv{repo: repo, publisher: publisher, svc: svc}
}

func eventsOfType(publisher *events.MockEventPublisher, eventType string) []events.Event {
	var out []events.Event
	for _, e := range publisher.GetPublishedEvents() {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

func hasSharePrefix(url string) bool {
	return strings.HasPrefix(url, "http://localhost:3000/shared/")
}

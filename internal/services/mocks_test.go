package services

import (
	"context"
	"fmt"
	"time"

	"github.com/edupath/backend/internal/models"
)

// mockTxManager runs the function directly; a configured error is returned instead of committing
type mockTxManager struct {
	err    error
	called int
}

func (m *mockTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.called++
	if err := fn(ctx); err != nil {
		return err
	}
	return m.err
}

// mockCourseRepository is a mock implementation of CourseRepository
type mockCourseRepository struct {
	courses map[int]*models.Course
	err     error
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	course, ok := m.courses[id]
	if !ok {
		return nil, fmt.Errorf("course %w", models.ErrNotFound)
	}
	return course, nil
}

// mockLessonRepository is a mock implementation of LessonRepository backed by a lesson list
type mockLessonRepository struct {
	modules []models.Module
	lessons []models.Lesson
	err     error
}

func (m *mockLessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, lesson := range m.lessons {
		if lesson.ID == id {
			l := lesson
			return &l, nil
		}
	}
	return nil, fmt.Errorf("lesson %w", models.ErrNotFound)
}

func (m *mockLessonRepository) GetPrevious(ctx context.Context, moduleID, orderIndex int) (*models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, lesson := range m.lessons {
		if lesson.ModuleID == moduleID && lesson.OrderIndex == orderIndex-1 {
			l := lesson
			return &l, nil
		}
	}
	return nil, nil
}

func (m *mockLessonRepository) CountByCourse(ctx context.Context, courseID int) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	count := 0
	for _, lesson := range m.lessons {
		if lesson.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

func (m *mockLessonRepository) GetModulesByCourse(ctx context.Context, courseID int) ([]models.Module, error) {
	if m.err != nil {
		return nil, m.err
	}
	var modules []models.Module
	for _, module := range m.modules {
		if module.CourseID == courseID {
			modules = append(modules, module)
		}
	}
	return modules, nil
}

func (m *mockLessonRepository) GetByCourse(ctx context.Context, courseID int) ([]models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	var lessons []models.Lesson
	for _, lesson := range m.lessons {
		if lesson.CourseID == courseID {
			lessons = append(lessons, lesson)
		}
	}
	return lessons, nil
}

// mockEnrollmentRepository is a mock implementation of EnrollmentRepository
type mockEnrollmentRepository struct {
	enrolled     bool
	existsErr    error
	createErr    error
	createCalled bool
	courses      []models.EnrolledCourse
	pairs        []models.EnrollmentPair
	listErr      error
}

func (m *mockEnrollmentRepository) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.enrolled, nil
}

func (m *mockEnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	m.createCalled = true
	if m.createErr != nil {
		return m.createErr
	}
	enrollment.ID = 1
	return nil
}

func (m *mockEnrollmentRepository) ListByUser(ctx context.Context, userID int) ([]models.EnrolledCourse, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.courses, nil
}

func (m *mockEnrollmentRepository) ListPairs(ctx context.Context, courseID, userID *int) ([]models.EnrollmentPair, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var pairs []models.EnrollmentPair
	for _, pair := range m.pairs {
		if courseID != nil && pair.CourseID != *courseID {
			continue
		}
		if userID != nil && pair.UserID != *userID {
			continue
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

type progressKey struct {
	userID   int
	lessonID int
}

type courseKey struct {
	userID   int
	courseID int
}

// mockProgressRepository keeps progress records in memory
type mockProgressRepository struct {
	lessons     map[progressKey]models.ProgressRecord
	courses     map[courseKey]models.ProgressRecord
	summaries   []models.CourseProgressSummary
	err         error
	upsertErr   error
	touchCalled bool
}

func newMockProgressRepository() *mockProgressRepository {
	return &mockProgressRepository{
		lessons: make(map[progressKey]models.ProgressRecord),
		courses: make(map[courseKey]models.ProgressRecord),
	}
}

func (m *mockProgressRepository) complete(userID, courseID, lessonID int) {
	id := lessonID
	m.lessons[progressKey{userID, lessonID}] = models.ProgressRecord{
		UserID:               userID,
		CourseID:             courseID,
		LessonID:             &id,
		IsCompleted:          true,
		CompletionPercentage: 100,
	}
}

func (m *mockProgressRepository) UpsertLesson(ctx context.Context, record *models.ProgressRecord) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	key := progressKey{record.UserID, *record.LessonID}
	if existing, ok := m.lessons[key]; ok {
		record.ID = existing.ID
	} else {
		record.ID = len(m.lessons) + 1
	}
	m.lessons[key] = *record
	return nil
}

func (m *mockProgressRepository) TouchLesson(ctx context.Context, userID, courseID, lessonID int, at time.Time) error {
	m.touchCalled = true
	if m.err != nil {
		return m.err
	}
	key := progressKey{userID, lessonID}
	record, ok := m.lessons[key]
	if !ok {
		id := lessonID
		record = models.ProgressRecord{UserID: userID, CourseID: courseID, LessonID: &id}
	}
	record.LastAccessed = &at
	m.lessons[key] = record
	return nil
}

func (m *mockProgressRepository) GetLesson(ctx context.Context, userID, lessonID int) (*models.ProgressRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	record, ok := m.lessons[progressKey{userID, lessonID}]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (m *mockProgressRepository) CountCompletedLessons(ctx context.Context, userID, courseID int) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	count := 0
	for key, record := range m.lessons {
		if key.userID == userID && record.CourseID == courseID && record.IsCompleted {
			count++
		}
	}
	return count, nil
}

func (m *mockProgressRepository) UpsertCourse(ctx context.Context, userID, courseID int, percentage float64, completed bool, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.courses[courseKey{userID, courseID}] = models.ProgressRecord{
		UserID:               userID,
		CourseID:             courseID,
		IsCompleted:          completed,
		CompletionPercentage: percentage,
		LastAccessed:         &at,
	}
	return nil
}

func (m *mockProgressRepository) ListLessonRecords(ctx context.Context, userID, courseID int) ([]models.ProgressRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var records []models.ProgressRecord
	for key, record := range m.lessons {
		if key.userID == userID && record.CourseID == courseID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (m *mockProgressRepository) ListCourseSummaries(ctx context.Context, userID int) ([]models.CourseProgressSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summaries, nil
}

// mockQuizRepository is a mock implementation of QuizRepository
type mockQuizRepository struct {
	quiz            *models.Quiz
	questions       []models.QuizQuestion
	err             error
	createErr       error
	createdQuiz     *models.Quiz
	createdQuestion []models.QuizQuestion
	setActiveCalled bool
	activeValue     bool
}

func (m *mockQuizRepository) GetByID(ctx context.Context, id int) (*models.Quiz, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.quiz == nil || m.quiz.ID != id {
		return nil, fmt.Errorf("quiz %w", models.ErrNotFound)
	}
	q := *m.quiz
	return &q, nil
}

func (m *mockQuizRepository) GetQuestions(ctx context.Context, quizID int) ([]models.QuizQuestion, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.questions, nil
}

func (m *mockQuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	if m.createErr != nil {
		return m.createErr
	}
	quiz.ID = 10
	m.createdQuiz = quiz
	return nil
}

func (m *mockQuizRepository) CreateQuestion(ctx context.Context, question *models.QuizQuestion) error {
	question.ID = 100 + len(m.createdQuestion)
	for i := range question.Options {
		question.Options[i].ID = question.ID*10 + i
		question.Options[i].QuestionID = question.ID
	}
	m.createdQuestion = append(m.createdQuestion, *question)
	return nil
}

func (m *mockQuizRepository) SetActive(ctx context.Context, id int, active bool) error {
	m.setActiveCalled = true
	m.activeValue = active
	return m.err
}

// mockQuizResultRepository keeps results in memory and enforces one result per (user, quiz)
type mockQuizResultRepository struct {
	results      []models.QuizResult
	answers      []models.QuizAnswer
	items        []models.QuizResultListItem
	existsErr    error
	createErr    error
	answersErr   error
	deleteCalled bool
	skipPreCheck bool
	nextID       int
}

func (m *mockQuizResultRepository) Exists(ctx context.Context, userID, quizID int) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	if m.skipPreCheck {
		return false, nil
	}
	return m.find(userID, quizID) >= 0, nil
}

func (m *mockQuizResultRepository) find(userID, quizID int) int {
	for i, result := range m.results {
		if result.UserID == userID && result.QuizID == quizID {
			return i
		}
	}
	return -1
}

func (m *mockQuizResultRepository) Create(ctx context.Context, result *models.QuizResult) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.find(result.UserID, result.QuizID) >= 0 {
		return fmt.Errorf("quiz already submitted: %w", models.ErrConflict)
	}
	m.nextID++
	result.ID = m.nextID
	m.results = append(m.results, *result)
	return nil
}

func (m *mockQuizResultRepository) CreateAnswers(ctx context.Context, answers []models.QuizAnswer) error {
	if m.answersErr != nil {
		return m.answersErr
	}
	m.answers = append(m.answers, answers...)
	return nil
}

func (m *mockQuizResultRepository) DeleteByUserAndQuiz(ctx context.Context, userID, quizID int) (bool, error) {
	m.deleteCalled = true
	i := m.find(userID, quizID)
	if i < 0 {
		return false, nil
	}
	resultID := m.results[i].ID
	m.results = append(m.results[:i], m.results[i+1:]...)
	kept := m.answers[:0]
	for _, answer := range m.answers {
		if answer.ResultID != resultID {
			kept = append(kept, answer)
		}
	}
	m.answers = kept
	return true, nil
}

func (m *mockQuizResultRepository) ListByQuiz(ctx context.Context, quizID int) ([]models.QuizResultListItem, error) {
	return m.items, m.existsErr
}

func (m *mockQuizResultRepository) ListByUser(ctx context.Context, userID int) ([]models.QuizResultListItem, error) {
	return m.items, m.existsErr
}

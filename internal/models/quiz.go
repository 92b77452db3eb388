package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// QuestionType represents how a quiz question is answered
type QuestionType string

const (
	QuestionTypeSingle   QuestionType = "single"
	QuestionTypeMultiple QuestionType = "multiple"
	QuestionTypeText     QuestionType = "text"
)

// Quiz represents a quiz attached to a lesson
type Quiz struct {
	ID           int       `json:"id"`
	LessonID     int       `json:"lessonId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	IsActive     bool      `json:"isActive"`
	PassingScore int       `json:"passingScore"`
	TimeLimit    *int      `json:"timeLimit,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// QuizQuestion represents a question of a quiz with its options
type QuizQuestion struct {
	ID                int          `json:"id"`
	QuizID            int          `json:"quizId"`
	Text              string       `json:"text"`
	Type              QuestionType `json:"type"`
	Points            int          `json:"points"`
	CorrectAnswerText *string      `json:"correctAnswer,omitempty"`
	Position          int          `json:"position"`
	Options           []QuizOption `json:"options"`
}

// QuizOption represents a selectable option of a question
type QuizOption struct {
	ID         int    `json:"id"`
	QuestionID int    `json:"questionId"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"isCorrect"`
}

// QuizResult represents a graded quiz attempt
type QuizResult struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	QuizID      int       `json:"quizId"`
	Score       float64   `json:"score"`
	Passed      bool      `json:"passed"`
	CompletedAt time.Time `json:"completedAt"`
	TimeSpent   int       `json:"timeSpent"`
}

// QuizAnswer represents the stored answer to one question of a graded attempt
type QuizAnswer struct {
	ID         int     `json:"id"`
	ResultID   int     `json:"resultId"`
	UserID     int     `json:"userId"`
	QuizID     int     `json:"quizId"`
	QuestionID int     `json:"questionId"`
	OptionID   *int    `json:"optionId"`
	AnswerText *string `json:"answerText"`
	IsCorrect  bool    `json:"isCorrect"`
}

// FlexibleID is an integer identifier that accepts both JSON numbers and numeric strings
type FlexibleID int

// UnmarshalJSON implements json.Unmarshaler
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid identifier %q", s)
		}
		*id = FlexibleID(v)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid identifier %s", string(data))
	}
	*id = FlexibleID(n)
	return nil
}

// AnswerValue holds a submitted answer, which may be a single value or a list of values
type AnswerValue struct {
	Values []string
	IsList bool
}

// UnmarshalJSON implements json.Unmarshaler
//
// Strings and numbers become a single value, arrays become a list and null leaves the answer empty.
func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = AnswerValue{}
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("invalid answer list: %w", err)
		}
		values := make([]string, 0, len(raw))
		for _, item := range raw {
			v, err := scalarString(item)
			if err != nil {
				return err
			}
			values = append(values, v)
		}
		*a = AnswerValue{Values: values, IsList: true}
		return nil
	}
	v, err := scalarString(data)
	if err != nil {
		return err
	}
	*a = AnswerValue{Values: []string{v}}
	return nil
}

// MarshalJSON implements json.Marshaler
func (a AnswerValue) MarshalJSON() ([]byte, error) {
	if a.IsList {
		if a.Values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.Values)
	}
	if len(a.Values) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(a.Values[0])
}

// Empty reports whether no value was submitted
func (a AnswerValue) Empty() bool {
	return len(a.Values) == 0
}

func scalarString(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("answer values must be strings or numbers")
}

// SubmittedAnswer is one answer of a quiz submission
type SubmittedAnswer struct {
	QuestionID FlexibleID  `json:"questionId" validate:"required"`
	Answer     AnswerValue `json:"answer"`
}

// QuizSubmission represents a student's answers to a quiz
type QuizSubmission struct {
	Answers   []SubmittedAnswer `json:"answers" validate:"dive"`
	TimeSpent *int              `json:"timeSpent,omitempty" validate:"omitempty,gte=0"`
}

// QuestionResult is the per-question breakdown of a graded submission
type QuestionResult struct {
	QuestionID    int          `json:"questionId"`
	QuestionText  string       `json:"questionText"`
	QuestionType  QuestionType `json:"questionType"`
	StudentAnswer any          `json:"studentAnswer"`
	CorrectAnswer any          `json:"correctAnswer"`
	IsCorrect     bool         `json:"isCorrect"`
}

// QuizSubmissionResult is returned after grading a submission
type QuizSubmissionResult struct {
	ID              int              `json:"id"`
	QuizID          int              `json:"quizId"`
	StudentID       int              `json:"studentId"`
	Score           float64          `json:"score"`
	IsPassed        bool             `json:"isPassed"`
	SubmittedAt     time.Time        `json:"submittedAt"`
	TimeSpent       int              `json:"timeSpent"`
	CorrectAnswers  int              `json:"correctAnswers"`
	TotalQuestions  int              `json:"totalQuestions"`
	PointsEarned    int              `json:"pointsEarned"`
	PointsTotal     int              `json:"pointsTotal"`
	Feedback        string           `json:"feedback"`
	DetailedResults []QuestionResult `json:"detailedResults"`
}

// CreateOptionRequest represents an option in a quiz creation request
type CreateOptionRequest struct {
	Text      string `json:"text" validate:"required,notblank"`
	IsCorrect bool   `json:"isCorrect"`
}

// CreateQuestionRequest represents a question in a quiz creation request
type CreateQuestionRequest struct {
	Text          string                `json:"text" validate:"required,notblank"`
	Type          QuestionType          `json:"type" validate:"required,oneof=single multiple text"`
	Points        int                   `json:"points" validate:"omitempty,gt=0"`
	CorrectAnswer string                `json:"correctAnswer"`
	Options       []CreateOptionRequest `json:"options" validate:"dive"`
}

// CreateQuizRequest represents a request to create a quiz with its questions
type CreateQuizRequest struct {
	LessonID     int                     `json:"lessonId" validate:"required,gt=0"`
	Title        string                  `json:"title" validate:"required,notblank,max=200"`
	Description  string                  `json:"description"`
	PassingScore *int                    `json:"passingScore,omitempty" validate:"omitempty,gte=0,lte=100"`
	TimeLimit    *int                    `json:"timeLimit,omitempty" validate:"omitempty,gt=0"`
	IsActive     *bool                   `json:"isActive,omitempty"`
	Questions    []CreateQuestionRequest `json:"questions" validate:"dive"`
}

// PublishQuizRequest toggles quiz availability
type PublishQuizRequest struct {
	IsPublished *bool `json:"isPublished" validate:"required"`
}

// OptionView is an option as shown to a caller
type OptionView struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	IsCorrect *bool  `json:"isCorrect,omitempty"`
}

// QuestionView is a question as shown to a caller
type QuestionView struct {
	ID            int          `json:"id"`
	Text          string       `json:"text"`
	Type          QuestionType `json:"type"`
	Points        int          `json:"points"`
	CorrectAnswer *string      `json:"correctAnswer,omitempty"`
	Options       []OptionView `json:"options"`
}

// QuizView is a quiz as shown to a caller; the answer key is only filled for staff
type QuizView struct {
	ID           int            `json:"id"`
	LessonID     int            `json:"lessonId"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	IsActive     bool           `json:"isPublished"`
	PassingScore int            `json:"passingScore"`
	TimeLimit    *int           `json:"timeLimit,omitempty"`
	Questions    []QuestionView `json:"questions"`
}

// QuizResultListItem represents a stored result in result listings
type QuizResultListItem struct {
	ID          int       `json:"id"`
	QuizID      int       `json:"quizId"`
	QuizTitle   string    `json:"quizTitle"`
	UserID      int       `json:"userId"`
	Score       float64   `json:"score"`
	Passed      bool      `json:"passed"`
	CompletedAt time.Time `json:"completedAt"`
	TimeSpent   int       `json:"timeSpent"`
	LessonID    int       `json:"lessonId"`
	LessonTitle string    `json:"lessonTitle"`
	CourseID    int       `json:"courseId"`
	CourseTitle string    `json:"courseTitle"`
}

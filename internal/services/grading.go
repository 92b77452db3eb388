package services

import (
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/edupath/backend/internal/models"
)

// GradedAnswer is the outcome of grading one question
type GradedAnswer struct {
	OptionID      *int
	AnswerText    *string
	StudentAnswer any
	CorrectAnswer any
	IsCorrect     bool
}

// GradeQuestion grades a submitted answer against a question.
//
// Single-choice answers are correct when exactly one option id equal to the correct option is given.
// Multiple-choice answers are correct when the submitted ids equal the correct set exactly.
// Text answers are correct when the first submitted value equals the stored answer ignoring case.
func GradeQuestion(question models.QuizQuestion, answer models.AnswerValue) GradedAnswer {
	switch question.Type {
	case models.QuestionTypeSingle:
		return gradeSingle(question, answer)
	case models.QuestionTypeMultiple:
		return gradeMultiple(question, answer)
	default:
		return gradeText(question, answer)
	}
}

func gradeSingle(question models.QuizQuestion, answer models.AnswerValue) GradedAnswer {
	var correctID *int
	for _, option := range question.Options {
		if option.IsCorrect {
			id := option.ID
			correctID = &id
			break
		}
	}

	graded := GradedAnswer{}
	if correctID != nil {
		graded.CorrectAnswer = *correctID
	}

	if len(answer.Values) != 1 {
		if !answer.Empty() {
			graded.StudentAnswer = answer.Values
		}
		return graded
	}

	id, err := strconv.Atoi(strings.TrimSpace(answer.Values[0]))
	if err != nil {
		graded.StudentAnswer = answer.Values[0]
		return graded
	}

	graded.StudentAnswer = id
	if hasOption(question, id) {
		graded.OptionID = &id
	}
	graded.IsCorrect = correctID != nil && id == *correctID
	return graded
}

func gradeMultiple(question models.QuizQuestion, answer models.AnswerValue) GradedAnswer {
	correct := make([]int, 0, len(question.Options))
	for _, option := range question.Options {
		if option.IsCorrect {
			correct = append(correct, option.ID)
		}
	}
	sort.Ints(correct)

	graded := GradedAnswer{CorrectAnswer: correct}
	if answer.Empty() {
		return graded
	}

	selected := make([]int, 0, len(answer.Values))
	valid := true
	for _, value := range answer.Values {
		id, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			valid = false
			continue
		}
		if !slices.Contains(selected, id) {
			selected = append(selected, id)
		}
	}
	sort.Ints(selected)

	graded.StudentAnswer = selected
	if len(selected) > 0 {
		joined := joinIDs(selected)
		graded.AnswerText = &joined
	}
	graded.IsCorrect = valid && len(correct) > 0 && slices.Equal(selected, correct)
	return graded
}

func gradeText(question models.QuizQuestion, answer models.AnswerValue) GradedAnswer {
	graded := GradedAnswer{}
	if question.CorrectAnswerText != nil {
		graded.CorrectAnswer = *question.CorrectAnswerText
	}

	if len(answer.Values) == 0 {
		return graded
	}

	text := answer.Values[0]
	graded.StudentAnswer = text
	graded.AnswerText = &text
	graded.IsCorrect = question.CorrectAnswerText != nil && strings.EqualFold(text, *question.CorrectAnswerText)
	return graded
}

func hasOption(question models.QuizQuestion, id int) bool {
	for _, option := range question.Options {
		if option.ID == id {
			return true
		}
	}
	return false
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// ComputeScore returns 100*correct/total rounded half to even at two decimals, or 0 when total is 0
func ComputeScore(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	score := 100 * float64(correct) / float64(total)
	return math.RoundToEven(score*100) / 100
}

// IsPassed reports whether a score reaches the passing threshold
func IsPassed(score float64, passingScore int) bool {
	return score >= float64(passingScore)
}

// Feedback returns the message shown after grading
func Feedback(passed bool) string {
	if passed {
		return "Congratulations! You passed the quiz."
	}
	return "Keep going! Review the lesson and try again."
}

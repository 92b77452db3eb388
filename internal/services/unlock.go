package services

import "github.com/edupath/backend/internal/models"

// IsLessonLocked reports whether a lesson is locked for a user.
//
// A lesson with order index > 1 is locked unless the lesson immediately preceding it
// in the same module is free or completed. A missing preceding lesson never locks.
func IsLessonLocked(lesson models.Lesson, previous *models.Lesson, previousCompleted bool) bool {
	if lesson.OrderIndex <= 1 || previous == nil {
		return false
	}
	return !previous.IsFree && !previousCompleted
}

type lessonKey struct {
	moduleID   int
	orderIndex int
}

// lockIndex evaluates lesson locks for a whole course from already loaded lessons
type lockIndex struct {
	byPosition map[lessonKey]models.Lesson
	completed  func(lessonID int) bool
}

func newLockIndex(lessons []models.Lesson, completed func(lessonID int) bool) *lockIndex {
	byPosition := make(map[lessonKey]models.Lesson, len(lessons))
	for _, lesson := range lessons {
		key := lessonKey{moduleID: lesson.ModuleID, orderIndex: lesson.OrderIndex}
		if _, ok := byPosition[key]; !ok {
			byPosition[key] = lesson
		}
	}
	return &lockIndex{byPosition: byPosition, completed: completed}
}

func (l *lockIndex) isLocked(lesson models.Lesson) bool {
	previous, ok := l.byPosition[lessonKey{moduleID: lesson.ModuleID, orderIndex: lesson.OrderIndex - 1}]
	if !ok {
		return IsLessonLocked(lesson, nil, false)
	}
	return IsLessonLocked(lesson, &previous, l.completed(previous.ID))
}

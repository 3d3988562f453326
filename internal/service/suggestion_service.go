package service

import (
	"fmt"
	"moodTracker/internal/models/suggestion"
	"strings"
	"time"
)

const clockLayout = "15:04"

const (
	MessageStartSmall = "Start small, each step forward is victory!"
	MessageEmbrace    = "Embrace challenges! Keep going!"
)

// проверка по вхождению подстроки, а не по равенству: "twenty-one" тоже попадает в первую группу
var (
	lowMoodWords  = []string{"one", "two", "three", "four", "five", "six"}
	highMoodWords = []string{"seven", "eight", "nine", "ten"}
)

type SuggestionService struct{}

func NewSuggestionService() SuggestionService {
	return SuggestionService{}
}

// Suggest считает подсказки по настроению и окна для учёбы.
// Время сравнивается только в пределах суток, переход через полночь не учитывается.
func (s *SuggestionService) Suggest(req suggestion.Request) (*suggestion.Result, error) {
	startSleep, err := parseClock(suggestion.FieldStartSleep, req.StartSleep)
	if err != nil {
		return nil, err
	}
	endSleep, err := parseClock(suggestion.FieldEndSleep, req.EndSleep)
	if err != nil {
		return nil, err
	}
	startWork, err := parseClock(suggestion.FieldStartWork, req.StartWork)
	if err != nil {
		return nil, err
	}
	endWork, err := parseClock(suggestion.FieldEndWork, req.EndWork)
	if err != nil {
		return nil, err
	}

	result := &suggestion.Result{
		Suggestions: MoodMessages(req.Mood),
		StudyTimes:  []string{},
	}

	if endSleep.Before(startWork) {
		result.StudyTimes = append(result.StudyTimes, studyWindow(endSleep, startWork))
	}
	if endWork.Before(startSleep) {
		result.StudyTimes = append(result.StudyTimes, studyWindow(endWork, startSleep))
	}

	return result, nil
}

// MoodMessages проверяет обе группы независимо, поэтому может вернуть 0, 1 или 2 сообщения.
func MoodMessages(mood string) []string {
	messages := []string{}
	if containsAny(mood, lowMoodWords) {
		messages = append(messages, MessageStartSmall)
	}
	if containsAny(mood, highMoodWords) {
		messages = append(messages, MessageEmbrace)
	}
	return messages
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func parseClock(field, value string) (time.Time, error) {
	t, err := time.Parse(clockLayout, value)
	if err != nil {
		busErr := NewValidationError(field, fmt.Sprintf("%q is not a valid HH:MM time", value))
		busErr.Details["value"] = value
		busErr.Err = err
		return time.Time{}, busErr
	}
	return t, nil
}

func studyWindow(from, to time.Time) string {
	return fmt.Sprintf("Study from %s to %s", from.Format(clockLayout), to.Format(clockLayout))
}

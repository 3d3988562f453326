package dto

import (
	"moodTracker/internal/models/suggestion"
	"moodTracker/internal/models/task"
	"time"
)

type TaskItem struct {
	ID   int64  `json:"id"`
	Text string `json:"task"`
}

type SchedulePage struct {
	Tasks []TaskItem
}

type SuggestionPage struct {
	Suggestions []string
	StudyTimes  []string
}

type HealthResponse struct {
	Status     string    `json:"status"`
	Service    string    `json:"service"`
	Repository string    `json:"repository"`
	Error      string    `json:"error,omitempty"`
	Time       time.Time `json:"time"`
}

func FromTask(t *task.Task) TaskItem {
	return TaskItem{
		ID:   t.ID,
		Text: t.Text,
	}
}

func FromTaskList(tasks []*task.Task) []TaskItem {
	result := make([]TaskItem, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}

func FromSuggestion(res *suggestion.Result) SuggestionPage {
	return SuggestionPage{
		Suggestions: res.Suggestions,
		StudyTimes:  res.StudyTimes,
	}
}

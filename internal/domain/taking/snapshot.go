package taking

import (
	"fmt"

	"github.com/IT-Nick/testportal/internal/domain/model"
)

// LowTimeSeconds порог, ниже которого время подсвечивается
const LowTimeSeconds = 300

// State состояние прохождения
type State string

const (
	StateInProgress       State = "in_progress"
	StateConfirmingSubmit State = "confirming_submit"
	StateSubmitted        State = "submitted"
)

// Snapshot неизменяемый снимок сессии для отображения
type Snapshot struct {
	TestID      string              `json:"test_id"`
	Title       string              `json:"title"`
	State       State               `json:"state"`
	Index       int                 `json:"index"`
	Total       int                 `json:"total"`
	SecondsLeft int                 `json:"seconds_left"`
	Answers     map[string]string   `json:"answers"`
	Answered    []bool              `json:"answered"`
	Unanswered  int                 `json:"unanswered"`
	Current     model.SheetQuestion `json:"current"`
	Submission  *model.Submission   `json:"submission,omitempty"`
}

// CompletionRatio доля отвеченных вопросов
func (s Snapshot) CompletionRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Total-s.Unanswered) / float64(s.Total)
}

// ProgressPercent прогресс в целых процентах, с округлением вниз
func (s Snapshot) ProgressPercent() int {
	if s.Total == 0 {
		return 0
	}
	return (s.Total - s.Unanswered) * 100 / s.Total
}

// LowTime true, когда осталось меньше пяти минут
func (s Snapshot) LowTime() bool {
	return s.SecondsLeft < LowTimeSeconds
}

// Clock оставшееся время в формате m:ss
func (s Snapshot) Clock() string {
	return FormatClock(s.SecondsLeft)
}

// FormatClock форматирует секунды как m:ss
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

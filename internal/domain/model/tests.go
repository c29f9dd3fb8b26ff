package model

import "time"

// Status статус теста
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Valid сообщает, известен ли статус
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Ограничения на длительность теста в минутах
const (
	MinTimeLimitMinutes     = 5
	MaxTimeLimitMinutes     = 180
	DefaultTimeLimitMinutes = 60
)

// Test представляет тест целиком, вместе с правильными ответами
type Test struct {
	ID               string     `json:"id" yaml:"id"`
	Title            string     `json:"title" yaml:"title"`
	Description      string     `json:"description" yaml:"description"`
	TimeLimitMinutes int        `json:"time_limit_minutes" yaml:"time_limit_minutes"`
	Questions        []Question `json:"questions" yaml:"questions"`
	Status           Status     `json:"status" yaml:"status"`
	AuthorID         string     `json:"author_id,omitempty" yaml:"author_id,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at" yaml:"-"`
}

// NewTest создает пустой черновик
func NewTest(id string) Test {
	return Test{
		ID:               id,
		TimeLimitMinutes: DefaultTimeLimitMinutes,
		Questions:        []Question{},
		Status:           StatusDraft,
	}
}

// ClampTimeLimit приводит длительность к допустимому диапазону
func ClampTimeLimit(minutes int) int {
	if minutes < MinTimeLimitMinutes {
		return MinTimeLimitMinutes
	}
	if minutes > MaxTimeLimitMinutes {
		return MaxTimeLimitMinutes
	}
	return minutes
}

// Clone глубокая копия теста
func (t Test) Clone() Test {
	out := t
	out.Questions = make([]Question, len(t.Questions))
	for i, q := range t.Questions {
		out.Questions[i] = q.Clone()
	}
	return out
}

// Sheet возвращает тест без признаков правильности для прохождения
func (t Test) Sheet() Sheet {
	sheet := Sheet{
		TestID:           t.ID,
		Title:            t.Title,
		Description:      t.Description,
		TimeLimitMinutes: t.TimeLimitMinutes,
		Questions:        make([]SheetQuestion, len(t.Questions)),
	}
	for i, q := range t.Questions {
		sq := SheetQuestion{ID: q.ID, Text: q.Text, Kind: q.Kind}
		for _, o := range q.Options() {
			sq.Options = append(sq.Options, SheetOption{ID: o.ID, Text: o.Text})
		}
		sheet.Questions[i] = sq
	}
	return sheet
}

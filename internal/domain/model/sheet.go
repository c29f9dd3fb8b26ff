package model

// Sheet тест в том виде, в котором его видит студент
type Sheet struct {
	TestID           string          `json:"test_id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	TimeLimitMinutes int             `json:"time_limit_minutes"`
	Questions        []SheetQuestion `json:"questions"`
}

// SheetQuestion вопрос без правильного ответа
type SheetQuestion struct {
	ID      string        `json:"id"`
	Text    string        `json:"text"`
	Kind    Kind          `json:"kind"`
	Options []SheetOption `json:"options,omitempty"`
}

type SheetOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// HasOption проверяет, есть ли у вопроса вариант с таким id
func (q SheetQuestion) HasOption(id string) bool {
	for _, o := range q.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}

// OptionText текст варианта по id
func (q SheetQuestion) OptionText(id string) string {
	for _, o := range q.Options {
		if o.ID == id {
			return o.Text
		}
	}
	return ""
}

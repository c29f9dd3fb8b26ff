package chatstate

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/testportal/internal/domain/model"
	"github.com/IT-Nick/testportal/internal/domain/taking"
)

// navPerRow количество номеров вопросов в одной строке навигации
const navPerRow = 6

// QuestionView текст и кнопки для текущего вопроса
func QuestionView(snap taking.Snapshot) (string, *telebot.ReplyMarkup) {
	q := snap.Current
	var sb strings.Builder
	fmt.Fprintf(&sb, "*%s*\nQuestion %d of %d · %d%% answered\n\n%s\n",
		escape(snap.Title), snap.Index+1, snap.Total, snap.ProgressPercent(), escape(q.Text))

	markup := &telebot.ReplyMarkup{}
	var rows []telebot.Row

	given := snap.Answers[q.ID]
	if q.Kind.IsChoice() {
		for _, o := range q.Options {
			label := o.Text
			if o.ID == given {
				label = "✅ " + label
			}
			rows = append(rows, markup.Row(markup.Data(label, model.AnswerKey, o.ID)))
		}
	} else {
		if given != "" {
			fmt.Fprintf(&sb, "\nYour answer: _%s_\n", escape(given))
		}
		sb.WriteString("\nSend your answer as a message.")
	}

	rows = append(rows, markup.Row(
		markup.Data("◀️ Prev", model.NavKey, model.NavPrev),
		markup.Data("Next ▶️", model.NavKey, model.NavNext),
	))

	var nav []telebot.Btn
	for i, done := range snap.Answered {
		label := strconv.Itoa(i + 1)
		if done {
			label += "✓"
		}
		if i == snap.Index {
			label = "[" + label + "]"
		}
		nav = append(nav, markup.Data(label, model.NavKey, strconv.Itoa(i)))
	}
	rows = append(rows, markup.Split(navPerRow, nav)...)
	rows = append(rows, markup.Row(markup.Data("📨 Submit", model.SubmitKey)))

	markup.Inline(rows...)
	return sb.String(), markup
}

// ConfirmView предупреждение о неотвеченных вопросах
func ConfirmView(snap taking.Snapshot) (string, *telebot.ReplyMarkup) {
	text := fmt.Sprintf("You have %d unanswered question(s). Submit anyway?\nTime left: %s",
		snap.Unanswered, snap.Clock())
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("Submit anyway", model.ConfirmSubmitKey),
		markup.Data("Continue test", model.CancelSubmitKey),
	))
	return text, markup
}

// SubmittedText итоговое сообщение
func SubmittedText(sub model.Submission, total int) string {
	head := "✅ Test submitted."
	if sub.TimedOut {
		head = "⏰ Time is up, the test was submitted automatically."
	}
	return fmt.Sprintf("%s\nAnswered %d of %d questions in %s.",
		head, len(sub.Answers), total, taking.FormatClock(sub.TimeSpentSeconds))
}

// Show показывает текущее состояние сессии: правит сообщение с кнопкой или шлет новое
func Show(c telebot.Context, snap taking.Snapshot) error {
	var (
		text   string
		markup *telebot.ReplyMarkup
	)
	switch snap.State {
	case taking.StateConfirmingSubmit:
		text, markup = ConfirmView(snap)
	case taking.StateSubmitted:
		if c.Callback() != nil {
			return c.Edit("Test finished.")
		}
		return nil
	default:
		text, markup = QuestionView(snap)
	}

	if c.Callback() != nil {
		err := c.Edit(text, markup, telebot.ModeMarkdown)
		if err != nil && strings.Contains(err.Error(), "message is not modified") {
			return nil
		}
		return err
	}
	return c.Send(text, markup, telebot.ModeMarkdown)
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func escape(s string) string {
	return markdownEscaper.Replace(s)
}

package timer

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/testportal/internal/domain/taking"
)

// Editor часть *telebot.Bot, которой достаточно для обновления сообщения
type Editor interface {
	Edit(msg telebot.Editable, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// Source сессия, чье время показывается
type Source interface {
	Snapshot() taking.Snapshot
}

type Updater struct {
	editor   Editor
	interval time.Duration
	log      logrus.FieldLogger
}

func NewTimerUpdater(editor Editor, interval time.Duration, log logrus.FieldLogger) *Updater {
	if interval <= 0 {
		interval = time.Second
	}
	return &Updater{editor: editor, interval: interval, log: log}
}

// Text текст сообщения с таймером для снимка сессии
func Text(snap taking.Snapshot) string {
	switch {
	case snap.State == taking.StateSubmitted && snap.Submission != nil && snap.Submission.TimedOut:
		return "⏰ Time is up!"
	case snap.State == taking.StateSubmitted:
		return "✅ Test submitted"
	}
	icon := "⏰"
	if snap.LowTime() {
		icon = "⚠️"
	}
	return fmt.Sprintf("%s Time left: %s, Question %d/%d, Progress %d%%",
		icon, snap.Clock(), snap.Index+1, snap.Total, snap.ProgressPercent())
}

// UpdateTimer обновляет сообщение с таймером, номером вопроса и прогрессом,
// пока сессия не завершится или не отменят ctx
func (tu *Updater) UpdateTimer(ctx context.Context, chatID int64, messageID int, src Source) {
	ticker := time.NewTicker(tu.interval)
	defer ticker.Stop()

	msg := &telebot.Message{ID: messageID, Chat: &telebot.Chat{ID: chatID}}
	last := ""
	for {
		select {
		case <-ctx.Done():
			tu.log.WithField("chat_id", chatID).Debug("timer update canceled")
			return
		case <-ticker.C:
			snap := src.Snapshot()
			text := Text(snap)
			if text != last {
				if _, err := tu.editor.Edit(msg, text); err != nil {
					tu.log.WithError(err).WithField("chat_id", chatID).Warn("failed to update timer message")
				}
				last = text
			}
			if snap.State == taking.StateSubmitted {
				return
			}
		}
	}
}

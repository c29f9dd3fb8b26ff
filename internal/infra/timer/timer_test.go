package timer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/testportal/internal/domain/model"
	"github.com/IT-Nick/testportal/internal/domain/taking"
)

type fakeEditor struct {
	mu    sync.Mutex
	texts []string
}

func (f *fakeEditor) Edit(_ telebot.Editable, what interface{}, _ ...interface{}) (*telebot.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, what.(string))
	return &telebot.Message{}, nil
}

func (f *fakeEditor) all() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

func TestText(t *testing.T) {
	snap := taking.Snapshot{State: taking.StateInProgress, SecondsLeft: 3599, Index: 1, Total: 3, Unanswered: 2}
	assert.Equal(t, "⏰ Time left: 59:59, Question 2/3, Progress 33%", Text(snap))

	snap.SecondsLeft = 61
	assert.Contains(t, Text(snap), "⚠️")

	snap.State = taking.StateSubmitted
	assert.Equal(t, "✅ Test submitted", Text(snap))
	snap.Submission = &model.Submission{TimedOut: true}
	assert.Equal(t, "⏰ Time is up!", Text(snap))
}

func TestUpdateTimerStopsOnSubmit(t *testing.T) {
	session, err := taking.New(model.Sheet{
		TimeLimitMinutes: 0,
		Questions:        []model.SheetQuestion{{ID: "q1", Kind: model.KindFreeText}},
	}, taking.Config{TickInterval: time.Millisecond})
	require.NoError(t, err)
	session.Start(context.Background())

	editor := &fakeEditor{}
	done := make(chan struct{})
	go func() {
		NewTimerUpdater(editor, time.Millisecond, logrus.New()).UpdateTimer(context.Background(), 1, 2, session)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("updater did not stop")
	}
	texts := editor.all()
	require.NotEmpty(t, texts)
	assert.Equal(t, "⏰ Time is up!", texts[len(texts)-1])
}

func TestUpdateTimerCanceled(t *testing.T) {
	session, err := taking.New(model.Sheet{
		TimeLimitMinutes: 5,
		Questions:        []model.SheetQuestion{{ID: "q1", Kind: model.KindFreeText}},
	}, taking.Config{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	NewTimerUpdater(&fakeEditor{}, time.Millisecond, logrus.New()).UpdateTimer(ctx, 1, 2, session)
}

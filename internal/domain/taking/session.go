package taking

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/IT-Nick/testportal/internal/domain/model"
)

// Recorder принимает готовую попытку (сервис результатов)
type Recorder interface {
	Record(ctx context.Context, sub model.Submission) error
}

// Config параметры сессии
type Config struct {
	StudentID    string
	TickInterval time.Duration
	Recorder     Recorder
	// OnSubmitted вызывается один раз после передачи попытки в Recorder
	OnSubmitted func(sub model.Submission, err error)
	Now         func() time.Time
	NewID       model.IDFunc
	Log         logrus.FieldLogger
}

// Outcome результат запроса на завершение
type Outcome struct {
	State      State
	Unanswered int
}

// Session прохождение одного теста одним студентом.
// Команды и тики таймера сериализуются через mu.
type Session struct {
	mu          sync.Mutex
	sheet       model.Sheet
	cfg         Config
	state       State
	index       int
	answers     map[string]string
	secondsLeft int
	total       int
	submission  *model.Submission
	closed      bool

	cancel context.CancelFunc
	done   chan struct{}
}

// New создает сессию в состоянии InProgress
func New(sheet model.Sheet, cfg Config) (*Session, error) {
	if len(sheet.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = model.NewID
	}
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}
	seconds := sheet.TimeLimitMinutes * 60
	if seconds < 0 {
		seconds = 0
	}
	return &Session{
		sheet:       sheet,
		cfg:         cfg,
		state:       StateInProgress,
		answers:     make(map[string]string),
		secondsLeft: seconds,
		total:       seconds,
		done:        make(chan struct{}),
	}, nil
}

// Start запускает таймер. Повторный вызов ничего не делает.
func (s *Session) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	if s.cancel != nil || s.closed || s.state == StateSubmitted {
		s.mu.Unlock()
		cancel()
		return
	}
	s.cancel = cancel
	s.mu.Unlock()

	go s.runClock(ctx)
}

func (s *Session) runClock(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.Tick(ctx) {
				return
			}
		}
	}
}

// Done закрывается, когда горутина таймера завершилась
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close останавливает таймер и делает сессию недоступной для команд.
// Не ждет завершения горутины, поэтому безопасен внутри OnSubmitted.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Tick уменьшает оставшееся время на секунду.
// На нуле попытка завершается без подтверждения.
// Возвращает false, когда таймер больше не нужен.
func (s *Session) Tick(ctx context.Context) bool {
	s.mu.Lock()
	if s.closed || s.state == StateSubmitted {
		s.mu.Unlock()
		return false
	}
	if s.secondsLeft > 0 {
		s.secondsLeft--
	}
	if s.secondsLeft > 0 {
		s.mu.Unlock()
		return true
	}
	sub := s.finalizeLocked(true)
	s.mu.Unlock()

	s.cfg.Log.WithField("test_id", sub.TestID).Info("time is up, submitting")
	_ = s.deliver(ctx, sub)
	return false
}

func (s *Session) checkActiveLocked() error {
	switch {
	case s.closed:
		return ErrClosed
	case s.state == StateSubmitted:
		return ErrSubmitted
	case s.state == StateConfirmingSubmit:
		return ErrConfirmationPending
	}
	return nil
}

// AnswerCurrent записывает ответ на текущий вопрос.
// Для вопросов с выбором value это id варианта.
func (s *Session) AnswerCurrent(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkActiveLocked(); err != nil {
		return err
	}
	q := s.sheet.Questions[s.index]
	if q.Kind.IsChoice() {
		if !q.HasOption(value) {
			return errors.Wrapf(ErrUnknownOption, "option %q", value)
		}
	} else if strings.TrimSpace(value) == "" {
		return ErrEmptyAnswer
	}
	s.answers[q.ID] = value
	return nil
}

// Next переходит к следующему вопросу
func (s *Session) Next() error {
	return s.move(func(i int) int { return i + 1 })
}

// Prev переходит к предыдущему вопросу
func (s *Session) Prev() error {
	return s.move(func(i int) int { return i - 1 })
}

// JumpTo переходит к вопросу по индексу, значение ограничивается диапазоном
func (s *Session) JumpTo(index int) error {
	return s.move(func(int) int { return index })
}

func (s *Session) move(to func(int) int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkActiveLocked(); err != nil {
		return err
	}
	i := to(s.index)
	if i < 0 {
		i = 0
	}
	if last := len(s.sheet.Questions) - 1; i > last {
		i = last
	}
	s.index = i
	return nil
}

// RequestSubmit завершает попытку, если все вопросы отвечены,
// иначе переходит в ConfirmingSubmit.
func (s *Session) RequestSubmit(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	if err := s.checkActiveLocked(); err != nil {
		s.mu.Unlock()
		return Outcome{}, err
	}
	if n := s.unansweredLocked(); n > 0 {
		s.state = StateConfirmingSubmit
		s.mu.Unlock()
		return Outcome{State: StateConfirmingSubmit, Unanswered: n}, nil
	}
	sub := s.finalizeLocked(false)
	s.mu.Unlock()

	return Outcome{State: StateSubmitted}, s.deliver(ctx, sub)
}

// ConfirmSubmit завершает попытку с неотвеченными вопросами
func (s *Session) ConfirmSubmit(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	if err := s.checkConfirmingLocked(); err != nil {
		s.mu.Unlock()
		return Outcome{}, err
	}
	n := s.unansweredLocked()
	sub := s.finalizeLocked(false)
	s.mu.Unlock()

	return Outcome{State: StateSubmitted, Unanswered: n}, s.deliver(ctx, sub)
}

// CancelSubmit возвращает к прохождению, ответы и время сохраняются
func (s *Session) CancelSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkConfirmingLocked(); err != nil {
		return err
	}
	s.state = StateInProgress
	return nil
}

func (s *Session) checkConfirmingLocked() error {
	switch {
	case s.closed:
		return ErrClosed
	case s.state == StateSubmitted:
		return ErrSubmitted
	case s.state != StateConfirmingSubmit:
		return ErrNotConfirming
	}
	return nil
}

func (s *Session) unansweredLocked() int {
	return len(s.sheet.Questions) - len(s.answers)
}

// finalizeLocked переводит сессию в Submitted. Вызывается не более одного раза.
func (s *Session) finalizeLocked(timedOut bool) model.Submission {
	s.state = StateSubmitted
	answers := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}
	sub := model.Submission{
		ID:               s.cfg.NewID(),
		TestID:           s.sheet.TestID,
		StudentID:        s.cfg.StudentID,
		Answers:          answers,
		TimeSpentSeconds: s.total - s.secondsLeft,
		TimedOut:         timedOut,
		SubmittedAt:      s.cfg.Now(),
	}
	s.submission = &sub
	if s.cancel != nil {
		s.cancel()
	}
	return sub
}

func (s *Session) deliver(ctx context.Context, sub model.Submission) error {
	var err error
	if s.cfg.Recorder != nil {
		// таймер уже отменен, а запись должна дойти до хранилища
		err = s.cfg.Recorder.Record(context.WithoutCancel(ctx), sub)
		if err != nil {
			err = errors.Wrap(err, "failed to record submission")
			s.cfg.Log.WithError(err).WithField("test_id", sub.TestID).Error("submission lost")
		}
	}
	if s.cfg.OnSubmitted != nil {
		s.cfg.OnSubmitted(sub, err)
	}
	return err
}

// Snapshot возвращает текущее состояние
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}
	answered := make([]bool, len(s.sheet.Questions))
	for i, q := range s.sheet.Questions {
		_, answered[i] = s.answers[q.ID]
	}
	snap := Snapshot{
		TestID:      s.sheet.TestID,
		Title:       s.sheet.Title,
		State:       s.state,
		Index:       s.index,
		Total:       len(s.sheet.Questions),
		SecondsLeft: s.secondsLeft,
		Answers:     answers,
		Answered:    answered,
		Unanswered:  s.unansweredLocked(),
		Current:     s.sheet.Questions[s.index],
	}
	if s.submission != nil {
		sub := *s.submission
		snap.Submission = &sub
	}
	return snap
}

// Sheet тест, который проходит студент
func (s *Session) Sheet() model.Sheet {
	return s.sheet
}

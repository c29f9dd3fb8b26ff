package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/IT-Nick/testportal/internal/domain/identity"
	"github.com/IT-Nick/testportal/internal/domain/model"
	"github.com/IT-Nick/testportal/internal/domain/results/repository"
	"github.com/IT-Nick/testportal/internal/domain/tests/definition"
	testsRepo "github.com/IT-Nick/testportal/internal/domain/tests/repository"
	"github.com/IT-Nick/testportal/internal/infra/storage"
)

func login(t *testing.T, email string, role model.Role) identity.Provider {
	t.Helper()
	dir, err := identity.DefaultDirectory(bcrypt.MinCost)
	require.NoError(t, err)
	p := identity.NewMockProvider(dir, storage.NewMemoryStore(), "", 0, nil)
	ok, err := p.Login(context.Background(), email, identity.MockPassword, role)
	require.NoError(t, err)
	require.True(t, ok)
	return p
}

func newService(t *testing.T) *ResultService {
	t.Helper()
	tests := testsRepo.NewMemoryRepository()
	require.NoError(t, tests.SaveTest(context.Background(), definition.Sample()))
	return NewResultService(repository.NewMemoryRepository(), tests, 60, nil)
}

func submission(id, student string, answers map[string]string) model.Submission {
	return model.Submission{
		ID:               id,
		TestID:           definition.SampleTestID,
		StudentID:        student,
		Answers:          answers,
		TimeSpentSeconds: 120,
		SubmittedAt:      time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestGrade(t *testing.T) {
	sub := submission("a", "s1", map[string]string{
		"q1": "q1-o1",
		"q2": "  gravitational potential energy is the energy stored in an object due to its position in a GRAVITATIONAL field. ",
		"q3": "q3-false",
	})
	res := Grade(definition.Sample(), sub)

	assert.Equal(t, 3, res.TotalQuestions)
	assert.Equal(t, 2, res.CorrectCount)
	assert.Equal(t, 67, res.Score)
	require.Len(t, res.Answers, 3)
	assert.Equal(t, "Newton", res.Answers[0].UserAnswer)
	assert.True(t, res.Answers[1].IsCorrect)
	assert.False(t, res.Answers[2].IsCorrect)
	assert.Equal(t, "True", res.Answers[2].CorrectAnswer)
}

func TestGradeUnanswered(t *testing.T) {
	res := Grade(definition.Sample(), submission("b", "s1", map[string]string{}))
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, 0, res.CorrectCount)
}

func TestStudentResults(t *testing.T) {
	s := newService(t)
	require.NoError(t, s.Record(context.Background(), submission("a", "s1", map[string]string{"q1": "q1-o1"})))
	require.NoError(t, s.Record(context.Background(), submission("a", "s1", map[string]string{})))
	require.NoError(t, s.Record(context.Background(), submission("b", "other", map[string]string{})))

	student := login(t, "student@example.com", model.RoleStudent)
	results, err := s.StudentResults(context.Background(), student)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 33, results[0].Score)

	res, err := s.Result(context.Background(), student, "a")
	require.NoError(t, err)
	assert.Equal(t, "Introduction to Physics", res.TestTitle)

	_, err = s.Result(context.Background(), student, "b")
	assert.ErrorIs(t, err, identity.ErrForbidden)

	_, err = s.Result(context.Background(), student, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTestSummaries(t *testing.T) {
	s := newService(t)
	all := map[string]string{"q1": "q1-o1", "q2": definition.Sample().Questions[1].ReferenceAnswer(), "q3": "q3-true"}
	require.NoError(t, s.Record(context.Background(), submission("a", "s1", all)))
	require.NoError(t, s.Record(context.Background(), submission("b", "s2", map[string]string{"q1": "q1-o1"})))

	_, err := s.TestSummaries(context.Background(), login(t, "student@example.com", model.RoleStudent))
	assert.ErrorIs(t, err, identity.ErrForbidden)

	summaries, err := s.TestSummaries(context.Background(), login(t, "teacher@example.com", model.RoleTeacher))
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	sum := summaries[0]
	assert.Equal(t, 2, sum.Participants)
	assert.Equal(t, 100, sum.HighestScore)
	assert.Equal(t, 33, sum.LowestScore)
	assert.InDelta(t, 66.5, sum.AverageScore, 1e-9)
	assert.InDelta(t, 50.0, sum.PassRate, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(definition.Sample(), nil, 60)
	assert.Equal(t, 0, sum.Participants)
	assert.Zero(t, sum.AverageScore)
}

package definition

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/testportal/internal/domain/authoring"
	"github.com/IT-Nick/testportal/internal/domain/model"
)

func TestSampleIsPublishable(t *testing.T) {
	sample := Sample()
	assert.True(t, model.IsPublishable(sample))
	assert.NoError(t, authoring.Validate(sample))
	assert.Equal(t, 60, sample.TimeLimitMinutes)
	assert.Len(t, sample.Questions, 3)
}

func TestLoadFile(t *testing.T) {
	test, err := LoadFile(filepath.Join("testdata", "physics.yaml"))
	require.NoError(t, err)

	assert.NotEmpty(t, test.ID)
	assert.Equal(t, 45, test.TimeLimitMinutes)
	assert.Equal(t, model.StatusPublished, test.Status)
	require.Len(t, test.Questions, 3)
	for _, q := range test.Questions {
		assert.NotEmpty(t, q.ID)
		for _, o := range q.Options() {
			assert.NotEmpty(t, o.ID)
		}
	}
	assert.NoError(t, authoring.Validate(test))
}

func TestLoadFileIncomplete(t *testing.T) {
	test, err := LoadFile(filepath.Join("testdata", "incomplete.yaml"))
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, test.Status)
	assert.EqualError(t, authoring.Validate(test), "question 1 missing correct answer")
}

func TestParseRejectsUnknownKind(t *testing.T) {
	_, err := Parse([]byte("title: x\nquestions:\n  - text: q\n    kind: essay\n"), nil)
	assert.Error(t, err)
}

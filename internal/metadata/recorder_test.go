package metadata

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordTextRejectsEmpty(t *testing.T) {
	r := NewRecorder(nil)

	row, err := r.RecordText(context.Background(), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Nil(t, row)
}

func TestRecordMediaURLValidation(t *testing.T) {
	r := NewRecorder(nil)

	t.Run("unknown column", func(t *testing.T) {
		row, err := r.RecordMediaURL(context.Background(), "document_url", "https://example.com/x")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownColumn)
		assert.Nil(t, row)
	})

	t.Run("empty url", func(t *testing.T) {
		row, err := r.RecordMediaURL(context.Background(), "audio_url", "")

		require.Error(t, err)
		assert.Nil(t, row)
	})
}

func TestContributionTableName(t *testing.T) {
	assert.Equal(t, "contributions", Contribution{}.TableName())
}

func TestContributionJSONOmitsNullColumns(t *testing.T) {
	text := "hello"
	row := Contribution{ID: 7, TextData: &text}

	data, err := json.Marshal(row)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "hello", decoded["text_data"])
	assert.NotContains(t, decoded, "audio_url")
	assert.NotContains(t, decoded, "video_url")
	assert.NotContains(t, decoded, "image_url")
}

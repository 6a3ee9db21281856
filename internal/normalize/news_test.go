package normalize

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewsAcceptsBothShapes(t *testing.T) {
	n := New(nil)
	bare := n.news(json.RawMessage(`[{"id": "a", "headline": "One"}, {"id": 2, "headline": "Two"}]`), "nba_1")
	wrapped := n.news(json.RawMessage(`{"articles": [{"id": "a", "headline": "One"}, {"id": 2, "headline": "Two"}]}`), "nba_1")

	assert.Len(t, bare, 2)
	assert.Equal(t, bare, wrapped)
	assert.Equal(t, "2", bare[1].ID)
}

func TestNewsUnknownShapesAreEmpty(t *testing.T) {
	var buf bytes.Buffer
	n := New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	for _, raw := range []string{``, `null`, `"headline"`, `{"articles": "nope"}`, `{}`} {
		got := n.news(json.RawMessage(raw), "nba_1")
		assert.NotNil(t, got, raw)
		assert.Empty(t, got, raw)
	}
	assert.Contains(t, buf.String(), "unrecognized news shape")
	assert.Contains(t, buf.String(), "undecodable news payload")
}

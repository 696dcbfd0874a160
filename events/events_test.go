package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-cms/events"
	"blog-cms/models"
)

func TestNewPostChangedEvent(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("KST", 9*3600))
	p := models.Post{ID: "42", Slug: "hello", Title: "Hello", Status: models.StatusDraft, Category: "tech"}

	evt := events.NewPostChangedEvent(events.PostUpdated, "api", p, at)

	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, events.PostUpdated, evt.Type)
	assert.Equal(t, "api", evt.Source)
	assert.Equal(t, events.Version, evt.Version)
	assert.Equal(t, time.UTC, evt.Timestamp.Location())
	assert.True(t, evt.Timestamp.Equal(at))
	assert.Equal(t, "42", evt.PostID)
	assert.Equal(t, "hello", evt.Slug)
	assert.Equal(t, "draft", evt.Status)
}

func TestDeserializeEvent(t *testing.T) {
	original := events.NewPostChangedEvent(events.PostDeleted, "api", models.Post{ID: "7", Title: "Bye"}, time.Now())
	data, err := json.Marshal(original)
	require.NoError(t, err)

	decoded, err := events.DeserializeEvent(events.PostDeleted, data)
	require.NoError(t, err)
	assert.Equal(t, "7", decoded.PostID)
	assert.Equal(t, events.PostDeleted, decoded.Type)

	_, err = events.DeserializeEvent("post.viewed", data)
	assert.Error(t, err)

	_, err = events.DeserializeEvent(events.PostCreated, []byte("{"))
	assert.Error(t, err)
}

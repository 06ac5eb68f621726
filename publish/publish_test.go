package publish

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytautotest11/auto-youtube/config"
	"github.com/ytautotest11/auto-youtube/types"
)

func TestPublishSkipsWithoutCredentials(t *testing.T) {
	t.Setenv("YOUTUBE_CLIENT_ID", "")
	t.Setenv("YOUTUBE_CLIENT_SECRET", "")
	t.Setenv("YOUTUBE_REFRESH_TOKEN", "")

	c := New(&config.UploadConfig{Visibility: "public", NotifySubscribers: true}, t.TempDir())
	res, err := c.Publish(context.Background(), types.PublishBundle{Title: "some video"})
	require.NoError(t, err)

	assert.Equal(t, "skipped", res.Status)
	assert.NotEmpty(t, res.Reason)
	assert.Empty(t, res.VideoID)
}

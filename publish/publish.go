// Package publish is the delivery boundary: it receives a finished
// PublishBundle and uploads it to YouTube via the Data API v3.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/ytautotest11/auto-youtube/config"
	"github.com/ytautotest11/auto-youtube/types"
)

// Result reports the outcome of one publish attempt.
type Result struct {
	Status   string `json:"status"` // uploaded | skipped
	VideoID  string `json:"video_id,omitempty"`
	VideoURL string `json:"video_url,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Coordinator uploads publish bundles. Credentials come from the
// environment; when they are absent the upload is skipped rather than
// failed, so local runs without secrets still produce artifacts.
type Coordinator struct {
	cfg     *config.UploadConfig
	logsDir string
}

// New creates a Coordinator.
func New(cfg *config.UploadConfig, logsDir string) *Coordinator {
	return &Coordinator{cfg: cfg, logsDir: logsDir}
}

// Publish uploads the bundle's video with its metadata and thumbnail
// to the channel named by bundle.ChannelID.
func (c *Coordinator) Publish(ctx context.Context, bundle types.PublishBundle) (Result, error) {
	client, err := oauthClient(ctx)
	if err != nil {
		log.Printf("[publish] credentials unavailable (%v) — skipping upload", err)
		return Result{Status: "skipped", Reason: err.Error()}, nil
	}

	svc, err := youtube.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return Result{}, fmt.Errorf("youtube service: %w", err)
	}

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       bundle.Title,
			Description: bundle.Description,
			Tags:        bundle.Tags,
			CategoryId:  c.cfg.CategoryID,
			ChannelId:   bundle.ChannelID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           c.cfg.Visibility,
			SelfDeclaredMadeForKids: c.cfg.MadeForKids,
		},
	}

	f, err := os.Open(bundle.Video.Path)
	if err != nil {
		return Result{}, fmt.Errorf("open video file: %w", err)
	}
	defer f.Close()

	log.Printf("[publish] uploading %q (%s, short-form=%v)", bundle.Title, bundle.Video.Path, bundle.ShortForm)
	uploaded, err := svc.Videos.Insert([]string{"snippet", "status"}, video).
		NotifySubscribers(c.cfg.NotifySubscribers).
		Media(f).Do()
	if err != nil {
		return Result{}, fmt.Errorf("youtube upload: %w", err)
	}

	if bundle.ThumbnailPath != "" {
		if err := c.setThumbnail(svc, uploaded.Id, bundle.ThumbnailPath); err != nil {
			log.Printf("[publish] thumbnail set failed: %v — video stays up without it", err)
		}
	}

	res := Result{
		Status:   "uploaded",
		VideoID:  uploaded.Id,
		VideoURL: "https://www.youtube.com/watch?v=" + uploaded.Id,
	}
	c.logUpload(bundle, res)
	log.Printf("[publish] uploaded: %s", res.VideoURL)
	return res, nil
}

func (c *Coordinator) setThumbnail(svc *youtube.Service, videoID, thumbPath string) error {
	f, err := os.Open(thumbPath)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = svc.Thumbnails.Set(videoID).Media(f).Do()
	return err
}

// oauthClient builds an OAuth2 HTTP client from env credentials.
func oauthClient(ctx context.Context) (*http.Client, error) {
	clientID := os.Getenv("YOUTUBE_CLIENT_ID")
	clientSecret := os.Getenv("YOUTUBE_CLIENT_SECRET")
	refreshToken := os.Getenv("YOUTUBE_REFRESH_TOKEN")

	if clientID == "" || clientSecret == "" || refreshToken == "" {
		return nil, fmt.Errorf("YOUTUBE_CLIENT_ID, YOUTUBE_CLIENT_SECRET or YOUTUBE_REFRESH_TOKEN not set")
	}

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{youtube.YoutubeUploadScope, youtube.YoutubeScope},
	}
	token := &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Hour), // force refresh
	}
	return oauth2.NewClient(ctx, conf.TokenSource(ctx, token)), nil
}

// logUpload appends the upload record to the logs directory.
func (c *Coordinator) logUpload(bundle types.PublishBundle, res Result) {
	entry := map[string]any{
		"video_id":    res.VideoID,
		"video_url":   res.VideoURL,
		"title":       bundle.Title,
		"channel_id":  bundle.ChannelID,
		"short_form":  bundle.ShortForm,
		"video_file":  bundle.Video.Path,
		"uploaded_at": time.Now().UTC().Format(time.RFC3339),
	}
	data, _ := json.MarshalIndent(entry, "", "  ")
	path := filepath.Join(c.logsDir, fmt.Sprintf("upload_%s.json", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("[publish] could not save upload log: %v", err)
	}
}

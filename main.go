package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/ytautotest11/auto-youtube/assemble"
	"github.com/ytautotest11/auto-youtube/assets"
	"github.com/ytautotest11/auto-youtube/audiomix"
	"github.com/ytautotest11/auto-youtube/config"
	"github.com/ytautotest11/auto-youtube/format"
	"github.com/ytautotest11/auto-youtube/metadata"
	"github.com/ytautotest11/auto-youtube/narration"
	"github.com/ytautotest11/auto-youtube/publish"
	"github.com/ytautotest11/auto-youtube/script"
	"github.com/ytautotest11/auto-youtube/textgen"
	"github.com/ytautotest11/auto-youtube/thumbnail"
	"github.com/ytautotest11/auto-youtube/types"
	"github.com/ytautotest11/auto-youtube/visuals"
)

func main() {
	topic := flag.String("topic", "daily motivation", "topic prompt for the video")
	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	flag.Parse()

	// Load .env for local dev; CI injects secrets directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	apiKey := os.Getenv("HF_API_KEY")
	if apiKey == "" {
		log.Fatal("HF_API_KEY not set")
	}

	for _, dir := range []string{cfg.Paths.Output, cfg.Paths.Logs} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("create dir %s: %v", dir, err)
		}
	}

	// Per-run working directory keyed by timestamp; artifacts from
	// failed runs stay in place for inspection.
	runID := time.Now().UTC().Format("20060102_150405") + "_" + uuid.NewString()[:8]
	runDir := filepath.Join(cfg.Paths.Output, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		log.Fatalf("create run dir: %v", err)
	}

	log.Printf("pipeline starting — run %s, topic %q, languages %v", runID, *topic, cfg.Script.Languages)

	state := &types.PipelineState{
		RunID:     runID,
		Topic:     *topic,
		StartedAt: time.Now().UTC().Format(time.RFC3339),
	}
	saveState := func() {
		state.CompletedAt = time.Now().UTC().Format(time.RFC3339)
		saveJSON(filepath.Join(runDir, "pipeline_state.json"), state)
	}
	defer saveState()

	p := newPipeline(cfg, apiKey)
	ctx := context.Background()

	// Language branches are mutually independent; a failed branch is
	// recorded and does not abort its siblings.
	var g errgroup.Group
	for _, lang := range cfg.Script.Languages {
		lang := lang
		branch := &types.BranchState{Language: lang}
		state.Branches = append(state.Branches, branch)
		g.Go(func() error {
			if err := p.runBranch(ctx, *topic, lang, filepath.Join(runDir, lang), branch); err != nil {
				branch.Error = err.Error()
				log.Printf("[%s] branch failed at stage %s: %v", lang, branch.FailedStage, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, b := range state.Branches {
		if b.Error != "" {
			failed++
		}
	}
	if failed == len(state.Branches) {
		state.Error = "all language branches failed"
		saveState() // log.Fatalf exits without running defers
		log.Fatalf("pipeline failed: %s", state.Error)
	}
	log.Printf("pipeline complete — %d/%d branch(es) succeeded", len(state.Branches)-failed, len(state.Branches))
}

// pipeline bundles the stage components shared by all branches. None
// of them hold mutable per-run state, so sharing across branches is
// safe.
type pipeline struct {
	cfg      *config.Config
	library  *assets.Library
	writer   *script.Writer
	synth    *narration.Synthesizer
	mixer    *audiomix.Mixer
	selector format.Selector
	meta     *metadata.Generator
	pub      *publish.Coordinator
}

func newPipeline(cfg *config.Config, apiKey string) *pipeline {
	return &pipeline{
		cfg:     cfg,
		library: assets.NewLibrary(cfg.Paths.Templates, cfg.Paths.Music),
		writer:  script.New(&cfg.Script, textgen.NewClient(apiKey, cfg.Script.TextModel)),
		synth:   narration.New(apiKey, cfg.Narration.TTSModel, cfg.Narration.Voices),
		mixer:   audiomix.New(&cfg.Audio),
		selector: format.Selector{
			CeilingSeconds: cfg.Format.ShortFormCeilingSeconds,
			ShortWidth:     cfg.Format.ShortWidth,
			ShortHeight:    cfg.Format.ShortHeight,
			LongWidth:      cfg.Format.LongWidth,
			LongHeight:     cfg.Format.LongHeight,
		},
		meta: metadata.New(&cfg.Metadata, textgen.NewClient(apiKey, cfg.Metadata.TextModel)),
		pub:  publish.New(&cfg.Upload, cfg.Paths.Logs),
	}
}

// runBranch runs one language variant end to end: script -> narration
// -> mix -> format -> storyboard -> reconcile -> assemble, with
// thumbnail and metadata running concurrently with assembly, then the
// publish handoff.
func (p *pipeline) runBranch(ctx context.Context, topic, lang, branchDir string, state *types.BranchState) error {
	if err := os.MkdirAll(branchDir, 0755); err != nil {
		return stageErr(state, "setup", err)
	}

	scr, err := p.writer.Run(ctx, topic, lang)
	if err != nil {
		return stageErr(state, "script", err)
	}
	state.Script = scr
	saveJSON(filepath.Join(branchDir, "script.json"), scr)

	narrText := strings.Join(scr.Sentences, " ")
	narr, err := p.synth.Synthesize(ctx, narrText, lang, filepath.Join(branchDir, "narration.wav"))
	if err != nil {
		return stageErr(state, "narration", err)
	}
	state.Narration = &narr

	music, err := p.library.Music()
	if err != nil {
		return stageErr(state, "audiomix", err)
	}
	mixed, err := p.mixer.Mix(ctx, narr, music, filepath.Join(branchDir, "audio_mixed.mp3"))
	if err != nil {
		return stageErr(state, "audiomix", err)
	}

	// Geometry is decided from mixed duration and feeds the wrap
	// budget, so it has to precede composition.
	decision, err := p.selector.Select(mixed.Duration, p.cfg.Format.VerticalPreference)
	if err != nil {
		return stageErr(state, "format", err)
	}
	log.Printf("[%s] format: short-form=%v %dx%d (%.2fs audio)", lang, decision.ShortForm, decision.Width, decision.Height, mixed.Duration)

	composer := visuals.NewComposer(&p.cfg.Visuals, p.library.Template())
	storyboard, err := composer.Compose(ctx, scr.Sentences, decision, p.cfg.Visuals.DefaultFrameSeconds, branchDir)
	if err != nil {
		return stageErr(state, "visuals", err)
	}

	reconciled, err := visuals.Reconcile(storyboard, mixed.Duration, p.cfg.Visuals.DurationToleranceSec)
	if err != nil {
		return stageErr(state, "reconcile", err)
	}

	// Thumbnail and metadata are independent of assembly and run
	// alongside it.
	var meta *types.VideoMetadata
	thumbPath := filepath.Join(branchDir, "thumbnail.png")

	bg, bctx := errgroup.WithContext(ctx)
	bg.Go(func() error {
		video, err := assemble.New(p.cfg.Visuals.FPS).
			Assemble(bctx, reconciled, mixed, decision, filepath.Join(branchDir, "video.mp4"))
		if err != nil {
			return fmt.Errorf("assemble: %w", err)
		}
		state.Video = &video
		return nil
	})
	bg.Go(func() error {
		thumb := thumbnail.New(p.library.Template(), p.cfg.Visuals.FontFile, p.cfg.Format.LongWidth, p.cfg.Format.LongHeight)
		if err := thumb.Compose(bctx, []string{scr.Title}, thumbPath); err != nil {
			return fmt.Errorf("thumbnail: %w", err)
		}
		state.Thumbnail = thumbPath
		return nil
	})
	bg.Go(func() error {
		meta = p.meta.Run(bctx, scr) // degrades internally, never errors
		return nil
	})
	// Render-group errors arrive already stage-prefixed.
	if err := bg.Wait(); err != nil {
		state.FailedStage = stageOf(err)
		return err
	}
	state.Metadata = meta
	saveJSON(filepath.Join(branchDir, "metadata.json"), meta)

	bundle := types.PublishBundle{
		Video:         *state.Video,
		ThumbnailPath: thumbPath,
		Title:         meta.Title,
		Description:   meta.Description,
		Tags:          meta.Tags,
		ChannelID:     p.cfg.Upload.Channels[lang],
		ShortForm:     decision.ShortForm,
	}
	res, err := p.pub.Publish(ctx, bundle)
	if err != nil {
		return stageErr(state, "publish", err)
	}
	state.YouTubeID = res.VideoID
	state.YouTubeURL = res.VideoURL

	log.Printf("[%s] branch complete: %s (%s)", lang, state.Video.Path, res.Status)
	return nil
}

// stageErr records which stage failed for the run state file.
func stageErr(state *types.BranchState, stage string, err error) error {
	state.FailedStage = stage
	return fmt.Errorf("%s: %w", stage, err)
}

// stageOf recovers the stage name from a wrapped branch-group error;
// the render-group goroutines prefix their errors with it.
func stageOf(err error) string {
	for _, stage := range []string{"assemble", "thumbnail"} {
		if strings.HasPrefix(err.Error(), stage+":") {
			return stage
		}
	}
	return "render"
}

func saveJSON(path string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("could not marshal %s: %v", path, err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("could not save %s: %v", path, err)
	}
}

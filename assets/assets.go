// Package assets locates the local template and music files the
// pipeline composites into every video.
package assets

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ytautotest11/auto-youtube/types"
)

var (
	imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}
	audioExts = map[string]bool{".mp3": true, ".wav": true, ".m4a": true, ".ogg": true}
)

// Library resolves background templates and music tracks from the
// configured asset directories.
type Library struct {
	templateDir string
	musicDir    string
}

// NewLibrary creates a Library over the given asset directories.
func NewLibrary(templateDir, musicDir string) *Library {
	return &Library{templateDir: templateDir, musicDir: musicDir}
}

// Template returns the first background template image, or "" when the
// directory has none. A missing template is not an error: frames fall
// back to a solid canvas.
func (l *Library) Template() string {
	path, err := firstWithExt(l.templateDir, imageExts)
	if err != nil {
		log.Printf("[assets] no template background in %s — using solid canvas", l.templateDir)
		return ""
	}
	return path
}

// Music returns the first background music track. Absence is fatal for
// the run: audio mixing cannot proceed without music.
func (l *Library) Music() (string, error) {
	path, err := firstWithExt(l.musicDir, audioExts)
	if err != nil {
		return "", fmt.Errorf("no music track in %s: %w", l.musicDir, types.ErrMissingAsset)
	}
	return path, nil
}

// firstWithExt returns the lexically first file in dir whose extension
// is in exts.
func firstWithExt(dir string, exts map[string]bool) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if exts[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", os.ErrNotExist
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}

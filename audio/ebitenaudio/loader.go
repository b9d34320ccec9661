// Package ebitenaudio loads sounds for an audio.Registry through the
// Ebitengine audio context.
package ebitenaudio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/phanxgames/serenity/audio"
)

var _ audio.Loader = (*Loader)(nil)

// Loader reads sound files from disk or over HTTP(S) and decodes them by
// extension (.wav, .mp3, .ogg).
type Loader struct {
	ctx     *ebaudio.Context
	client  *http.Client
	timeout time.Duration
}

// NewLoader returns a loader on the process audio context, creating it at
// sampleRate if none exists yet. Ebitengine allows only one context per
// process, so an existing context keeps its own rate.
func NewLoader(sampleRate int) *Loader {
	ctx := ebaudio.CurrentContext()
	if ctx == nil {
		ctx = ebaudio.NewContext(sampleRate)
	}
	return &Loader{
		ctx:     ctx,
		client:  http.DefaultClient,
		timeout: 30 * time.Second,
	}
}

// Load implements audio.Loader.
func (l *Loader) Load(url string) (audio.Player, error) {
	data, err := l.fetch(url)
	if err != nil {
		return nil, err
	}
	stream, err := l.decode(url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	p, err := l.ctx.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}
	return p, nil
}

func (l *Loader) fetch(url string) ([]byte, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return os.ReadFile(url)
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (l *Loader) decode(url string, r io.Reader) (io.Reader, error) {
	sr := l.ctx.SampleRate()
	ext := strings.ToLower(path.Ext(stripQuery(url)))
	switch ext {
	case ".wav":
		return wav.DecodeWithSampleRate(sr, r)
	case ".mp3":
		return mp3.DecodeWithSampleRate(sr, r)
	case ".ogg":
		return vorbis.DecodeWithSampleRate(sr, r)
	default:
		return nil, fmt.Errorf("unsupported audio format %q", ext)
	}
}

func stripQuery(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		return url[:i]
	}
	return url
}

package audio

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakePlayer struct {
	playing bool
	pos     time.Duration
	closed  bool
}

func (p *fakePlayer) Play()           { p.playing = true }
func (p *fakePlayer) Pause()          { p.playing = false }
func (p *fakePlayer) IsPlaying() bool { return p.playing }
func (p *fakePlayer) Close() error    { p.closed = true; return nil }

func (p *fakePlayer) SetPosition(offset time.Duration) error {
	p.pos = offset
	return nil
}

type fakeLoader struct {
	players map[string]*fakePlayer
	err     error
}

func (l *fakeLoader) Load(url string) (Player, error) {
	if l.err != nil {
		return nil, l.err
	}
	p := &fakePlayer{}
	if l.players == nil {
		l.players = make(map[string]*fakePlayer)
	}
	l.players[url] = p
	return p, nil
}

func TestRegistryPlayPauseStop(t *testing.T) {
	loader := &fakeLoader{}
	r := NewRegistry(loader, nil)
	require.NoError(t, r.Load("jump", "sfx/jump.wav"))
	p := loader.players["sfx/jump.wav"]

	r.Play("jump")
	assert.True(t, r.IsPlaying("jump"))

	p.pos = 2 * time.Second
	r.Pause("jump")
	assert.False(t, p.playing)
	assert.Equal(t, 2*time.Second, p.pos, "pause keeps position")

	r.Play("jump")
	r.Stop("jump")
	assert.False(t, p.playing)
	assert.Zero(t, p.pos, "stop rewinds")
}

func TestRegistryResetKeepsPlaying(t *testing.T) {
	loader := &fakeLoader{}
	r := NewRegistry(loader, nil)
	require.NoError(t, r.Load("music", "music.ogg"))
	p := loader.players["music.ogg"]

	r.Play("music")
	p.pos = 30 * time.Second
	r.Reset("music")
	assert.True(t, p.playing)
	assert.Zero(t, p.pos)
}

func TestRegistryUnknownKeyLogsAndNoops(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewRegistry(&fakeLoader{}, zap.New(core))

	r.Play("missing")
	r.Pause("missing")
	r.Stop("missing")
	r.Reset("missing")

	assert.False(t, r.Loaded("missing"))
	assert.Equal(t, 4, logs.FilterMessage("sound not loaded").Len())
}

func TestRegistryLoadError(t *testing.T) {
	r := NewRegistry(&fakeLoader{err: errors.New("no such file")}, nil)
	err := r.Load("boom", "boom.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.False(t, r.Loaded("boom"))
}

func TestRegistryReloadClosesOld(t *testing.T) {
	loader := &fakeLoader{}
	r := NewRegistry(loader, nil)
	require.NoError(t, r.Load("k", "a.wav"))
	require.NoError(t, r.Load("k", "b.wav"))
	assert.True(t, loader.players["a.wav"].closed)
	assert.False(t, loader.players["b.wav"].closed)
}

func TestRegistryUnload(t *testing.T) {
	loader := &fakeLoader{}
	r := NewRegistry(loader, nil)
	require.NoError(t, r.Load("k", "a.wav"))
	r.Play("k")
	r.Unload("k")
	assert.False(t, r.Loaded("k"))
	assert.True(t, loader.players["a.wav"].closed)
	assert.False(t, loader.players["a.wav"].playing)
}

// Package audio keeps a registry of named sound channels.
//
// Sounds are loaded under a key and then played, paused, stopped or reset
// by that key. Operations on a key that was never loaded do nothing except
// log a warning, so a missing asset never takes the game down.
package audio

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// Player is a single playable sound.
type Player interface {
	Play()
	Pause()
	IsPlaying() bool
	SetPosition(offset time.Duration) error
}

// Loader turns a URL or file path into a Player.
type Loader interface {
	Load(url string) (Player, error)
}

// Registry maps keys to loaded sounds. It is not safe for concurrent use;
// call it from the frame thread.
type Registry struct {
	loader Loader
	sounds map[string]Player
	log    *zap.Logger
}

// NewRegistry returns an empty registry that loads sounds through loader.
func NewRegistry(loader Loader, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		loader: loader,
		sounds: make(map[string]Player),
		log:    log,
	}
}

// Load loads url and stores it under key, replacing and closing any sound
// already stored there.
func (r *Registry) Load(key, url string) error {
	p, err := r.loader.Load(url)
	if err != nil {
		r.log.Error("sound load failed", zap.String("key", key), zap.String("url", url), zap.Error(err))
		return fmt.Errorf("load sound %q: %w", key, err)
	}
	if old, ok := r.sounds[key]; ok {
		closePlayer(old)
	}
	r.sounds[key] = p
	r.log.Debug("sound loaded", zap.String("key", key), zap.String("url", url))
	return nil
}

// Loaded reports whether key has a sound.
func (r *Registry) Loaded(key string) bool {
	_, ok := r.sounds[key]
	return ok
}

// IsPlaying reports whether the sound under key is playing.
func (r *Registry) IsPlaying(key string) bool {
	p, ok := r.sounds[key]
	return ok && p.IsPlaying()
}

// Play starts or resumes the sound under key.
func (r *Registry) Play(key string) {
	if p := r.lookup(key, "play"); p != nil {
		p.Play()
	}
}

// Pause pauses the sound under key, keeping its position.
func (r *Registry) Pause(key string) {
	if p := r.lookup(key, "pause"); p != nil {
		p.Pause()
	}
}

// Stop pauses the sound under key and rewinds it to the start.
func (r *Registry) Stop(key string) {
	if p := r.lookup(key, "stop"); p != nil {
		p.Pause()
		r.rewind(key, p)
	}
}

// Reset rewinds the sound under key to the start without changing whether
// it is playing.
func (r *Registry) Reset(key string) {
	if p := r.lookup(key, "reset"); p != nil {
		r.rewind(key, p)
	}
}

// Unload stops and removes the sound under key.
func (r *Registry) Unload(key string) {
	p, ok := r.sounds[key]
	if !ok {
		return
	}
	p.Pause()
	closePlayer(p)
	delete(r.sounds, key)
}

func (r *Registry) lookup(key, op string) Player {
	p, ok := r.sounds[key]
	if !ok {
		r.log.Warn("sound not loaded", zap.String("key", key), zap.String("op", op))
		return nil
	}
	return p
}

func (r *Registry) rewind(key string, p Player) {
	if err := p.SetPosition(0); err != nil {
		r.log.Warn("sound rewind failed", zap.String("key", key), zap.Error(err))
	}
}

func closePlayer(p Player) {
	if c, ok := p.(io.Closer); ok {
		_ = c.Close()
	}
}

package notify

import (
	"context"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/sandeepkv93/lins/internal/logging"
	"golang.org/x/time/rate"
)

const cueSpacing = time.Second

// SoundPlayer plays a short audio file in the background. Cues closer than
// one second apart collapse into one.
type SoundPlayer struct {
	path    string
	goos    string
	run     Runner
	limiter *rate.Limiter
	log     logging.Logger
}

func NewSoundPlayer(path string, log logging.Logger) *SoundPlayer {
	if log == nil {
		log = logging.NewNop()
	}
	return &SoundPlayer{
		path:    strings.TrimSpace(path),
		goos:    runtime.GOOS,
		run:     execRunner,
		limiter: rate.NewLimiter(rate.Every(cueSpacing), 1),
		log:     log,
	}
}

// PlayCue returns immediately. The player is not awaited.
func (p *SoundPlayer) PlayCue() {
	if p.path == "" {
		return
	}
	if _, err := os.Stat(p.path); err != nil {
		p.log.Debugf(context.Background(), "alert sound unavailable: %v", err)
		return
	}
	if !p.limiter.Allow() {
		return
	}
	name, args, ok := p.command()
	if !ok {
		return
	}
	go func() {
		if err := p.run(name, args...); err != nil {
			p.log.Warnf(context.Background(), "play alert sound: %v", err)
		}
	}()
}

func (p *SoundPlayer) command() (string, []string, bool) {
	switch p.goos {
	case "linux":
		return "paplay", []string{p.path}, true
	case "darwin":
		return "afplay", []string{p.path}, true
	case "windows":
		script := "(New-Object Media.SoundPlayer '" + strings.ReplaceAll(p.path, "'", "''") + "').PlaySync()"
		return "powershell", []string{"-NoProfile", "-Command", script}, true
	default:
		return "", nil, false
	}
}

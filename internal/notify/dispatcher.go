// Package notify presents notification requests to the user and plays the
// alert cue.
package notify

import (
	"context"
	"os/exec"

	"github.com/sandeepkv93/lins/internal/logging"
	"github.com/sandeepkv93/lins/internal/scheduler"
)

type Presenter interface {
	Present(title, body string)
}

type Cue interface {
	PlayCue()
}

type Dispatcher interface {
	Presenter
	Cue
}

// Runner starts an external command and waits for it.
type Runner func(name string, args ...string) error

func execRunner(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

type Noop struct{}

func (Noop) Present(string, string) {}
func (Noop) PlayCue()               {}

// Pair joins a presenter and a cue into one Dispatcher.
type Pair struct {
	Presenter Presenter
	Cue       Cue
}

func (p Pair) Present(title, body string) {
	if p.Presenter != nil {
		p.Presenter.Present(title, body)
	}
}

func (p Pair) PlayCue() {
	if p.Cue != nil {
		p.Cue.PlayCue()
	}
}

// Deliver presents req and plays the cue when the request asks for sound.
func Deliver(d Dispatcher, req scheduler.Request) {
	d.Present(req.Title, req.Body)
	if req.Sound {
		d.PlayCue()
	}
}

// Pump drains requests into d until ctx is done or the channel closes.
func Pump(ctx context.Context, requests <-chan scheduler.Request, d Dispatcher, log logging.Logger) {
	if log == nil {
		log = logging.NewNop()
	}
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-requests:
			if !ok {
				log.Debugf(ctx, "request channel closed")
				return
			}
			log.Infof(ctx, "deliver %s request %s", req.Reason, req.ID)
			Deliver(d, req)
		}
	}
}

package notify

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/sandeepkv93/lins/internal/logging"
)

// Desktop shows notifications through the platform notifier. Unsupported
// platforms are a no-op.
type Desktop struct {
	goos string
	run  Runner
	log  logging.Logger
}

func NewDesktop(log logging.Logger) *Desktop {
	if log == nil {
		log = logging.NewNop()
	}
	return &Desktop{goos: runtime.GOOS, run: execRunner, log: log}
}

func (d *Desktop) Send(title, body string) error {
	switch d.goos {
	case "linux":
		return d.run("notify-send", "--app-name=Lins", title, body)
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return d.run("osascript", "-e", script)
	default:
		return nil
	}
}

func (d *Desktop) Present(title, body string) {
	if err := d.Send(title, body); err != nil {
		d.log.Warnf(context.Background(), "desktop notification failed: %v", err)
	}
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Package settings owns user preferences and the persisted window placement.
package settings

const (
	DefaultRepeatInterval = 30
	DefaultWidth          = 839
	DefaultHeight         = 600
	StateNormal           = "normal"
	StateZoomed           = "zoomed"

	// offscreenLimit marks coordinates of a minimized window that must not
	// be restored.
	offscreenLimit = -1000
)

// RepeatChoices are the reminder intervals offered by the host UI.
var RepeatChoices = []int{5, 10, 15, 30, 60, 120}

// Window is owned by the UI layer and round-trips unchanged.
type Window struct {
	Width  int
	Height int
	X      *int
	Y      *int
	State  string
}

type Settings struct {
	Window               Window
	NotificationsEnabled bool
	SoundEnabled         bool
	AutostartEnabled     bool
	// RepeatInterval is in minutes; 0 disables periodic reminders.
	RepeatInterval int
}

func Defaults() Settings {
	return Settings{
		Window: Window{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			State:  StateNormal,
		},
		NotificationsEnabled: true,
		SoundEnabled:         true,
		AutostartEnabled:     false,
		RepeatInterval:       DefaultRepeatInterval,
	}
}

// NextRepeatChoice cycles through RepeatChoices starting after current.
func NextRepeatChoice(current int) int {
	for i, c := range RepeatChoices {
		if c == current {
			return RepeatChoices[(i+1)%len(RepeatChoices)]
		}
	}
	for _, c := range RepeatChoices {
		if c > current {
			return c
		}
	}
	return RepeatChoices[0]
}

func clone(s Settings) Settings {
	out := s
	if s.Window.X != nil {
		x := *s.Window.X
		out.Window.X = &x
	}
	if s.Window.Y != nil {
		y := *s.Window.Y
		out.Window.Y = &y
	}
	return out
}

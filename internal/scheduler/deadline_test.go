package scheduler

import (
	"testing"
	"time"

	"github.com/sandeepkv93/lins/internal/model"
)

func TestShouldAlertBoundaries(t *testing.T) {
	base := time.Date(2026, 2, 9, 12, 0, 0, 0, time.Local)
	due := "09.02.2026 12:05"
	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"exactly five minutes ahead", base, true},
		{"just over five minutes ahead", base.Add(-6 * time.Millisecond), false},
		{"three minutes ahead", base.Add(2 * time.Minute), true},
		{"one second ahead", base.Add(5*time.Minute - time.Second), true},
		{"exactly due", base.Add(5 * time.Minute), false},
		{"past due", base.Add(6 * time.Minute), false},
		{"an hour ahead", base.Add(-time.Hour), false},
	}
	for _, tc := range cases {
		got, err := ShouldAlert(model.Task{Description: "x", Due: due}, tc.now, DefaultHorizon)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: ShouldAlert = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestShouldAlertIgnoresCompleted(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.Local)
	task := model.Task{Description: "x", Due: "09.02.2026 12:03", Completed: true}
	got, err := ShouldAlert(task, now, DefaultHorizon)
	if err != nil || got {
		t.Fatalf("completed task must not alert, got=%v err=%v", got, err)
	}
}

func TestShouldAlertUnparsableDue(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.Local)
	if _, err := ShouldAlert(model.Task{Description: "x", Due: "soon"}, now, DefaultHorizon); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestShouldAlertCustomHorizon(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.Local)
	task := model.Task{Description: "x", Due: "09.02.2026 12:10"}
	if got, _ := ShouldAlert(task, now, DefaultHorizon); got {
		t.Fatal("ten minutes out must not alert with the default horizon")
	}
	if got, _ := ShouldAlert(task, now, 15*time.Minute); !got {
		t.Fatal("ten minutes out must alert with a fifteen minute horizon")
	}
}

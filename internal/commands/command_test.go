package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add 12.03.2026 09:30 pay rent", TypeAdd},
		{"done 2", TypeDone},
		{"/delete 1", TypeDelete},
		{"/interval 15", TypeInterval},
		{"/NOTIFY off", TypeNotify},
		{"sound on", TypeSound},
		{"/autostart on", TypeAutostart},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("/add 12.03.2026 09:30  Позвонить   маме ")
	if err != nil {
		t.Fatalf("parse add: %v", err)
	}
	if cmd.Add.Due != "12.03.2026 09:30" || cmd.Add.Description != "Позвонить маме" {
		t.Fatalf("unexpected add args: %+v", cmd.Add)
	}

	cmd, err = Parse("/done 3")
	if err != nil || cmd.Target.Index != 2 {
		t.Fatalf("expected 0-based index 2, got %+v err=%v", cmd.Target, err)
	}

	cmd, err = Parse("/interval 0")
	if err != nil || cmd.Interval.Minutes != 0 {
		t.Fatalf("expected zero interval, got %+v err=%v", cmd.Interval, err)
	}

	cmd, err = Parse("/sound off")
	if err != nil || cmd.Toggle.On {
		t.Fatalf("expected sound off, got %+v err=%v", cmd.Toggle, err)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	inputs := []string{
		"/add 12.03.2026 pay",
		"/done",
		"/done 0",
		"/delete two",
		"/interval -5",
		"/notify maybe",
		"/sound",
	}
	for _, in := range inputs {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "/", " / "} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/delete 4")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Delete: func(a TargetArgs) (Result, error) {
			called = true
			if a.Index != 3 {
				t.Fatalf("unexpected index: %d", a.Index)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	for _, in := range []string{"/add 01.01.2027 10:00 x", "/done 1", "/interval 5", "/notify on", "/autostart off"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", in, err)
		}
		_, err = Execute(cmd, Handlers{})
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
			t.Fatalf("%q: expected missing handler error, got %v", in, err)
		}
	}
}

func TestExecuteUnknownType(t *testing.T) {
	_, err := Execute(Command{Type: "snooze"}, Handlers{})
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

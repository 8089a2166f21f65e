// Package commands parses the slash commands typed into the palette.
package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd       Type = "add"
	TypeDone      Type = "done"
	TypeDelete    Type = "delete"
	TypeInterval  Type = "interval"
	TypeNotify    Type = "notify"
	TypeSound     Type = "sound"
	TypeAutostart Type = "autostart"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Description string
	Due         string
}

// TargetArgs addresses a task by its 0-based position. Users type 1-based
// numbers.
type TargetArgs struct {
	Index int
}

type IntervalArgs struct {
	Minutes int
}

type ToggleArgs struct {
	On bool
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Target   *TargetArgs
	Interval *IntervalArgs
	Toggle   *ToggleArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone, TypeDelete:
		return parseTarget(input, Type(head), args)
	case TypeInterval:
		return parseInterval(input, args)
	case TypeNotify, TypeSound, TypeAutostart:
		return parseToggle(input, Type(head), args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) < 3 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires <dd.mm.yyyy> <HH:MM> <description>"}
	}
	due := args[0] + " " + args[1]
	description := strings.TrimSpace(strings.Join(args[2:], " "))
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Description: description, Due: due}}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task number", typ)}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task number: %s", args[0])}
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{Index: n - 1}}, nil
}

func parseInterval(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "interval requires minutes"}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid interval: %s", args[0])}
	}
	return Command{Type: TypeInterval, Raw: raw, Interval: &IntervalArgs{Minutes: n}}, nil
}

func parseToggle(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires on or off", typ)}
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		return Command{Type: typ, Raw: raw, Toggle: &ToggleArgs{On: true}}, nil
	case "off", "false", "0":
		return Command{Type: typ, Raw: raw, Toggle: &ToggleArgs{On: false}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s expects on or off, got %s", typ, args[0])}
	}
}

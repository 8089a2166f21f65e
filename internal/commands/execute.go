package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add       func(AddArgs) (Result, error)
	Done      func(TargetArgs) (Result, error)
	Delete    func(TargetArgs) (Result, error)
	Interval  func(IntervalArgs) (Result, error)
	Notify    func(ToggleArgs) (Result, error)
	Sound     func(ToggleArgs) (Result, error)
	Autostart func(ToggleArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Done(*cmd.Target)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Delete(*cmd.Target)
	case TypeInterval:
		if handlers.Interval == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Interval(*cmd.Interval)
	case TypeNotify:
		if handlers.Notify == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Notify(*cmd.Toggle)
	case TypeSound:
		if handlers.Sound == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Sound(*cmd.Toggle)
	case TypeAutostart:
		if handlers.Autostart == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Autostart(*cmd.Toggle)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

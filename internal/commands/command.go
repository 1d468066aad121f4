// Package commands parses the slash-command palette input into typed
// commands and dispatches them to caller-supplied handlers.
package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/habitd/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDone   Type = "done"
	TypeCount  Type = "count"
	TypeRemind Type = "remind"
	TypeShow   Type = "show"
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
	Title    string
	Category model.Category
}

type CountArgs struct {
	Count int
}

type RemindArgs struct {
	At time.Time
}

type ShowArgs struct {
	Category model.Category
	All      bool
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Count  *CountArgs
	Remind *RemindArgs
	Show   *ShowArgs
}

const remindLayout = "2006-01-02 15:04"

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		if len(args) != 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done takes no arguments"}
		}
		return Command{Type: TypeDone, Raw: input}, nil
	case TypeCount:
		return parseCount(input, args)
	case TypeRemind:
		return parseRemind(input, args)
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	category := model.CategoryOther
	titleParts := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(strings.ToLower(arg), "cat:") {
			category = model.Category(strings.ToLower(strings.TrimPrefix(arg, "cat:")))
			continue
		}
		titleParts = append(titleParts, arg)
	}
	title := strings.TrimSpace(strings.Join(titleParts, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	if !category.IsValid() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category: %s", category)}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title, Category: category}}, nil
}

func parseCount(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "count requires a single number"}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("not a number: %s", args[0])}
	}
	return Command{Type: TypeCount, Raw: raw, Count: &CountArgs{Count: n}}, nil
}

func parseRemind(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "remind requires a date and time, e.g. remind 2026-02-10 09:30"}
	}
	at, err := time.ParseInLocation(remindLayout, args[0]+" "+args[1], time.Local)
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad reminder time: %s %s", args[0], args[1])}
	}
	return Command{Type: TypeRemind, Raw: raw, Remind: &RemindArgs{At: at}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a category or 'all'"}
	}
	subject := strings.ToLower(args[0])
	if subject == "all" {
		return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{All: true}}, nil
	}
	category := model.Category(subject)
	if !category.IsValid() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category: %s", subject)}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Category: category}}, nil
}

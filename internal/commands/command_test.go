package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/habitd/internal/model"
)

func TestParseAddWithCategory(t *testing.T) {
	cmd, err := Parse("/add Morning run cat:fitness")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Type != TypeAdd || cmd.Add == nil {
		t.Fatalf("unexpected command: %#v", cmd)
	}
	if cmd.Add.Title != "Morning run" || cmd.Add.Category != model.CategoryFitness {
		t.Fatalf("unexpected args: %#v", cmd.Add)
	}
}

func TestParseAddDefaultsToOther(t *testing.T) {
	cmd, err := Parse("add Journal")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Add.Category != model.CategoryOther {
		t.Fatalf("expected default category, got %s", cmd.Add.Category)
	}
}

func TestParseAddRejectsUnknownCategory(t *testing.T) {
	_, err := Parse("add Nap cat:sleep")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid_argument, got %v", err)
	}
}

func TestParseCount(t *testing.T) {
	cmd, err := Parse("count 12")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Count == nil || cmd.Count.Count != 12 {
		t.Fatalf("unexpected args: %#v", cmd.Count)
	}

	if _, err := Parse("count twelve"); err == nil {
		t.Fatal("expected error for non-numeric count")
	}
}

func TestParseRemind(t *testing.T) {
	cmd, err := Parse("remind 2026-02-10 09:30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2026, 2, 10, 9, 30, 0, 0, time.Local)
	if !cmd.Remind.At.Equal(want) {
		t.Fatalf("expected %v, got %v", want, cmd.Remind.At)
	}

	if _, err := Parse("remind tomorrow"); err == nil {
		t.Fatal("expected error for unparseable time")
	}
}

func TestParseShow(t *testing.T) {
	cmd, err := Parse("show fitness")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Show.All || cmd.Show.Category != model.CategoryFitness {
		t.Fatalf("unexpected args: %#v", cmd.Show)
	}

	cmd, err = Parse("show all")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !cmd.Show.All {
		t.Fatalf("expected all, got %#v", cmd.Show)
	}
}

func TestParseRejectsEmptyAndUnknown(t *testing.T) {
	var cmdErr *CommandError
	_, err := Parse("   ")
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty_input, got %v", err)
	}
	_, err = Parse("launch")
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown_command, got %v", err)
	}
}

func TestExecuteDispatchesToHandler(t *testing.T) {
	cmd, err := Parse("done")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Done: func() (Result, error) {
			called = true
			return Result{Message: "counted"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !called || res.Message != "counted" {
		t.Fatalf("handler not invoked correctly: %#v", res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("show all")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected handler_missing, got %v", err)
	}
}

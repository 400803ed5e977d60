package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/study"
)

// prompter reads one line of input. *liner.State implements it.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// REPL drives a study session from line input.
type REPL struct {
	session *study.Session
	in      prompter
	out     io.Writer
}

func newREPL(session *study.Session, in prompter, out io.Writer) *REPL {
	return &REPL{session: session, in: in, out: out}
}

// Run starts the session and reads input until it ends. Aborting the prompt
// (Ctrl-C, EOF) abandons the session like q does.
func (r *REPL) Run(ctx context.Context) error {
	view, err := r.session.Start(ctx, time.Time{})
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	if view.State == study.StateEmpty {
		fmt.Fprintln(r.out, "Nothing is due in this deck.")
		return nil
	}
	fmt.Fprintf(r.out, "%d cards due. Enter flips, 1-4 grades, q quits.\n", view.Total)
	r.show(view)

	for !r.session.State().Terminal() {
		if ctx.Err() != nil {
			return r.quit()
		}
		line, err := r.in.Prompt(r.prompt())
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				return r.quit()
			}
			return fmt.Errorf("reading input: %w", err)
		}
		if done, err := r.handle(ctx, strings.ToLower(strings.TrimSpace(line))); done || err != nil {
			return err
		}
	}
	return nil
}

func (r *REPL) prompt() string {
	if r.session.State() == study.StateRevealed {
		return "grade> "
	}
	return "> "
}

// handle runs one command and reports whether the REPL should stop.
func (r *REPL) handle(ctx context.Context, cmd string) (bool, error) {
	switch cmd {
	case "q", "quit", "exit":
		return true, r.quit()
	case "s", "status":
		v := r.session.View()
		fmt.Fprintf(r.out, "%d of %d graded\n", v.Graded, v.Total)
		return false, nil
	case "", "f", "flip":
		if r.session.State() != study.StatePresenting {
			fmt.Fprintln(r.out, "Grade the card first: 1 again, 2 hard, 3 good, 4 easy")
			return false, nil
		}
		view, err := r.session.Flip()
		if err != nil {
			return false, err
		}
		r.show(view)
		return false, nil
	}

	grade, err := domain.ParseGrade(cmd)
	if err != nil {
		fmt.Fprintf(r.out, "Unknown input %q\n", cmd)
		return false, nil
	}
	if r.session.State() != study.StateRevealed {
		fmt.Fprintln(r.out, "Flip the card before grading it.")
		return false, nil
	}
	view, err := r.session.Grade(ctx, grade, time.Time{})
	if err != nil {
		fmt.Fprintf(r.out, "Could not save the grade (%v). Try again or q to quit.\n", err)
		return false, nil
	}
	if res := view.LastResult; res != nil {
		fmt.Fprintf(r.out, "%s, next review %s\n", grade, res.State.Due.Local().Format(time.RFC1123))
	}
	if view.State == study.StateCompleted {
		fmt.Fprintf(r.out, "Done. %d cards reviewed.\n", view.Graded)
		return true, nil
	}
	r.show(view)
	return false, nil
}

func (r *REPL) quit() error {
	if r.session.State().Terminal() {
		return nil
	}
	view, err := r.session.Abandon()
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Session abandoned after %d of %d cards.\n", view.Graded, view.Total)
	return nil
}

func (r *REPL) show(view study.View) {
	if view.Card == nil {
		return
	}
	if view.State == study.StateRevealed {
		fmt.Fprintf(r.out, "\n%s\n", view.Card.Back)
		return
	}
	fmt.Fprintf(r.out, "\n[%d/%d] %s\n", view.Position, view.Total, view.Card.Front)
}

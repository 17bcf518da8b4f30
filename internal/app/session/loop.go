// Package session drives one game from the welcome screen to the end of the
// story over a line-oriented console.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/frickbooks/internal/app/conversation"
	"github.com/PabloGalante/frickbooks/internal/app/entry"
	"github.com/PabloGalante/frickbooks/internal/domain"
	"github.com/PabloGalante/frickbooks/internal/observability"
)

const (
	Title      = "FrickBooks"
	Welcome    = "Welcome to FrickBooks!"
	NamePrompt = "What's the name of your startup?"
)

var ErrNoHistory = errors.New("no history factory configured")

// Console is the display plus the input side of the terminal.
type Console interface {
	domain.Display
	Header(title string)
	// Type appends a line to the input buffer and returns the whole buffer.
	Type(line string) string
	InputDisabled() bool
	Lines() <-chan string
}

type Config struct {
	Settings     conversation.Settings
	Instructions string
	// NewHistory builds the bounded history for a new game.
	NewHistory func() domain.HistoryStore
}

type Loop struct {
	llm      domain.LLMClient
	sessions domain.SessionStore
	console  Console
	cfg      Config
	now      func() time.Time

	mu   sync.Mutex
	ctrl *conversation.Controller
}

func NewLoop(llm domain.LLMClient, sessions domain.SessionStore, console Console, cfg Config) *Loop {
	return &Loop{
		llm:      llm,
		sessions: sessions,
		console:  console,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Controller returns the turn controller of the running game, or nil before
// a startup name has been chosen.
func (l *Loop) Controller() *conversation.Controller {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ctrl
}

type outcome struct {
	result *conversation.TurnResult
	err    error
}

// Run plays one game. It returns nil when the story ends, when input runs
// out, or when ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	if l.cfg.NewHistory == nil {
		return ErrNoHistory
	}
	log := observability.LoggerFromContext(ctx)
	lines := l.console.Lines()

	name, ok := l.welcome(ctx, lines)
	if !ok {
		log.Info("session ended before a startup was named")
		return nil
	}

	ctrl, err := l.start(ctx, name)
	if err != nil {
		return err
	}

	done := make(chan outcome, 1)
	ctrl.OnTurnComplete(func(r *conversation.TurnResult, err error) {
		done <- outcome{result: r, err: err}
	})

	ctx = observability.WithSessionID(ctx, string(ctrl.Session().ID))
	l.home()
	return l.play(ctx, ctrl, lines, done)
}

func (l *Loop) welcome(ctx context.Context, lines <-chan string) (string, bool) {
	l.console.Header(Title)
	l.console.Write(Welcome, domain.ColorWhite)
	l.console.Write(NamePrompt, domain.ColorDefault)

	for {
		select {
		case <-ctx.Done():
			return "", false
		case line, ok := <-lines:
			if !ok {
				return "", false
			}
			if name := strings.TrimSpace(line); name != "" {
				return name, true
			}
		}
	}
}

func (l *Loop) start(ctx context.Context, name string) (*conversation.Controller, error) {
	now := l.now()
	sess := &domain.Session{
		ID:          domain.SessionID(uuid.NewString()),
		CreatedAt:   now,
		UpdatedAt:   now,
		StartupName: name,
	}
	if err := l.sessions.CreateSession(sess); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	ctrl, err := conversation.NewController(l.llm, l.sessions, l.cfg.NewHistory(), l.console, sess.ID, l.cfg.Settings)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.ctrl = ctrl
	l.mu.Unlock()

	observability.LoggerFromContext(observability.WithSessionID(ctx, string(sess.ID))).
		Info("session started", "startup", name)
	return ctrl, nil
}

func (l *Loop) home() {
	l.console.Header(Title)
	if l.cfg.Instructions != "" {
		l.console.Write(l.cfg.Instructions, domain.ColorGrey)
	}
	l.console.UpdateStatus(conversation.StandardPrompt, domain.ColorWhite)
}

func (l *Loop) play(ctx context.Context, ctrl *conversation.Controller, lines <-chan string, done <-chan outcome) error {
	log := observability.LoggerFromContext(ctx)
	inFlight := false

	for {
		// No reading while a turn is in flight.
		in := lines
		if inFlight {
			in = nil
		}

		select {
		case <-ctx.Done():
			ctrl.Wait()
			log.Info("session cancelled", "state", ctrl.State().String())
			return nil

		case out := <-done:
			inFlight = false
			if out.err == nil && out.result.Terminated {
				return nil
			}

		case line, ok := <-in:
			if !ok {
				log.Info("input closed", "state", ctrl.State().String())
				return nil
			}
			if l.console.InputDisabled() {
				log.Debug("input discarded while disabled")
				continue
			}

			buffer := l.console.Type(line)
			err := ctrl.HandleInput(ctx, buffer)
			switch {
			case err == nil:
				inFlight = strings.HasSuffix(buffer, conversation.SubmitGesture)
			case isEntryError(err):
				l.console.ClearInput()
			case errors.Is(err, conversation.ErrTerminated):
				return nil
			case errors.Is(err, conversation.ErrBusy):
				log.Debug("input ignored while busy")
			default:
				return err
			}
		}
	}
}

func isEntryError(err error) bool {
	return errors.Is(err, entry.ErrMalformed) ||
		errors.Is(err, entry.ErrEmpty) ||
		errors.Is(err, entry.ErrNegativeAmount) ||
		errors.Is(err, entry.ErrUnbalanced)
}

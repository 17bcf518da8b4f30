package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/PabloGalante/frickbooks/internal/app/entry"
	"github.com/PabloGalante/frickbooks/internal/domain"
	"github.com/PabloGalante/frickbooks/internal/observability"
)

const (
	// SubmitGesture ends a submission: the user presses ENTER twice.
	SubmitGesture = "\n\n"
	// EndMarker closes the story when a reply ends with it.
	EndMarker = "The End."
	// DefaultTimeout bounds a single backend call.
	DefaultTimeout = 20 * time.Second

	StandardPrompt = "Enter in an accounting entry. Press ENTER twice when done."

	statusInvalid    = "Invalid input. Try again."
	statusNegative   = "Amounts must be positive. Try again."
	statusUnbalanced = "Debits and credits must balance. Try again."
	statusThinking   = "Thinking..."
)

// Settings are fixed for the life of a controller.
type Settings struct {
	Model        string
	SystemPrompt string // template, see NamePlaceholder
	Timeout      time.Duration
}

// TurnResult describes a completed exchange.
type TurnResult struct {
	Batch      domain.Batch
	Reply      domain.Message
	Terminated bool
}

// Controller runs the turn state machine for one session:
// idle -> parsing -> validating -> awaiting backend -> idle | terminated.
// At most one turn runs at a time; the state doubles as the in-flight guard.
type Controller struct {
	llm      domain.LLMClient
	sessions domain.SessionStore
	history  domain.HistoryStore
	display  domain.Display
	settings Settings
	now      func() time.Time
	parse    func(string) (domain.Batch, error)

	sessionID domain.SessionID

	mu      sync.Mutex
	state   State
	session domain.Session
	onTurn  func(*TurnResult, error)

	wg sync.WaitGroup
}

func NewController(
	llm domain.LLMClient,
	sessions domain.SessionStore,
	history domain.HistoryStore,
	display domain.Display,
	sessionID domain.SessionID,
	settings Settings,
) (*Controller, error) {
	sess, err := sessions.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", sessionID, err)
	}
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	c := &Controller{
		llm:      llm,
		sessions: sessions,
		history:  history,
		display:  display,
		settings: settings,
		now:      time.Now,
		parse:    entry.Parse,

		sessionID: sess.ID,
		session:   *sess,
	}
	if sess.Terminated {
		c.state = StateTerminated
	}
	return c, nil
}

// OnTurnComplete registers a callback invoked after every backend exchange,
// successful or not. It runs on the goroutine that made the call.
func (c *Controller) OnTurnComplete(fn func(*TurnResult, error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTurn = fn
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Session() domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *Controller) History() []domain.Message {
	return c.history.Snapshot()
}

// Wait blocks until backend calls started by HandleInput have finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// HandleInput reacts to the input buffer changing. Nothing happens until the
// buffer ends with the submit gesture. Parsing and validation run inline and
// their errors are returned; the backend call runs in the background.
func (c *Controller) HandleInput(ctx context.Context, buffer string) error {
	if !strings.HasSuffix(buffer, SubmitGesture) {
		return nil
	}
	raw := strings.TrimSuffix(buffer, SubmitGesture)
	ctx = c.withSession(ctx)

	if err := c.begin(); err != nil {
		c.logger(ctx).Warn("input ignored", "reason", err)
		return err
	}
	c.display.SetInput(raw)

	batch, err := c.prepare(ctx, raw)
	if err != nil {
		return err
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		_, _ = c.exchange(ctx, batch)
	}()
	return nil
}

// Submit runs a whole turn on the caller's goroutine.
func (c *Controller) Submit(ctx context.Context, raw string) (*TurnResult, error) {
	ctx = c.withSession(ctx)
	if err := c.begin(); err != nil {
		return nil, err
	}

	batch, err := c.prepare(ctx, raw)
	if err != nil {
		return nil, err
	}
	return c.exchange(ctx, batch)
}

func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateIdle:
		c.state = StateParsing
		return nil
	case StateTerminated:
		return ErrTerminated
	default:
		return ErrBusy
	}
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

// prepare parses and validates the submission. On success the controller is
// left awaiting the backend with input disabled.
func (c *Controller) prepare(ctx context.Context, raw string) (domain.Batch, error) {
	log := c.logger(ctx)

	batch, err := c.parse(raw)
	if err != nil {
		log.Info("entry rejected", "error", err)
		c.reject(statusInvalid)
		return nil, err
	}

	c.setState(StateValidating)
	if err := entry.Validate(batch); err != nil {
		log.Info("entry rejected", "error", err)
		if errors.Is(err, entry.ErrNegativeAmount) {
			c.reject(statusNegative)
		} else {
			c.reject(statusUnbalanced)
		}
		return nil, err
	}

	c.setState(StateAwaitingBackend)
	c.display.UpdateStatus(statusThinking, domain.ColorBlue)
	c.display.SetInputDisabled(true)
	log.Info("entry accepted", "items", len(batch))
	return batch, nil
}

func (c *Controller) reject(status string) {
	c.display.UpdateStatus(status, domain.ColorRed)
	c.setState(StateIdle)
}

func (c *Controller) exchange(ctx context.Context, batch domain.Batch) (*TurnResult, error) {
	log := c.logger(ctx)
	sess := c.Session()

	req := BuildRequest(
		c.settings.Model,
		RenderSystemPrompt(c.settings.SystemPrompt, sess.StartupName),
		c.history.Snapshot(),
		batch,
	)

	callCtx, cancel := context.WithTimeout(ctx, c.settings.Timeout)
	defer cancel()

	start := c.now()
	reply, err := c.llm.Complete(callCtx, req)
	if err != nil {
		berr := &BackendError{Err: err}
		log.Error("backend call failed", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		c.display.UpdateStatus(fmt.Sprintf("Something went wrong: %v", err), domain.ColorRed)
		c.display.SetInputDisabled(false)
		c.setState(StateIdle)
		c.notify(nil, berr)
		return nil, berr
	}
	log.Info("backend replied", "elapsed_ms", time.Since(start).Milliseconds(), "history_len", c.history.Len())

	reply.Role = domain.RoleAssistant
	c.history.Append(req.Messages[len(req.Messages)-1], reply)

	for _, item := range batch {
		col := domain.ColorRed
		if item.IsDebit {
			col = domain.ColorGreen
		}
		c.display.Write(item.String(), col)
	}
	c.display.Write("", domain.ColorDefault)
	c.display.Write(reply.Content, domain.ColorDefault)
	c.display.Write("", domain.ColorDefault)
	c.display.ClearInput()

	result := &TurnResult{
		Batch:      batch,
		Reply:      reply,
		Terminated: strings.HasSuffix(strings.TrimSpace(reply.Content), EndMarker),
	}

	sess.Turns++
	sess.UpdatedAt = c.now()
	sess.Terminated = result.Terminated
	if err := c.sessions.UpdateSession(&sess); err != nil {
		log.Error("failed to update session", "error", err)
	}

	c.mu.Lock()
	c.session = sess
	if result.Terminated {
		c.state = StateTerminated
	} else {
		c.state = StateIdle
	}
	c.mu.Unlock()

	if result.Terminated {
		log.Info("story ended", "turns", sess.Turns)
		c.display.UpdateStatus(fmt.Sprintf("%s has shut down.", sess.StartupName), domain.ColorOrange)
	} else {
		c.display.UpdateStatus(StandardPrompt, domain.ColorWhite)
		c.display.SetInputDisabled(false)
	}

	c.notify(result, nil)
	return result, nil
}

func (c *Controller) notify(result *TurnResult, err error) {
	c.mu.Lock()
	fn := c.onTurn
	c.mu.Unlock()

	if fn != nil {
		fn(result, err)
	}
}

func (c *Controller) withSession(ctx context.Context) context.Context {
	return observability.WithSessionID(ctx, string(c.sessionID))
}

func (c *Controller) logger(ctx context.Context) *slog.Logger {
	return observability.LoggerFromContext(ctx)
}

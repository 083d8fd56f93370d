package whatsapp

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/ykarmi/kinderbell/internal"
)

// State is the transport session lifecycle state
type State int

const (
	StateUninitialized State = iota
	StateLaunching
	StateAwaitingHandshake
	StateReady
	StateConversationSelected
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLaunching:
		return "launching"
	case StateAwaitingHandshake:
		return "awaiting-handshake"
	case StateReady:
		return "ready"
	case StateConversationSelected:
		return "conversation-selected"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// WhatsApp Web selectors
const (
	selQRCanvas     = `canvas[aria-label="Scan me!"]`
	selChatList     = `[data-testid="chat-list"]`
	selSearchBox    = `[data-testid="chat-list-search"]`
	selSearchResult = `[data-testid="cell-frame-title"]`
	selComposeBox   = `[data-testid="conversation-compose-box-input"]`
)

const (
	surfaceQR       = "qr-code"
	surfaceChatList = "chat-list"
)

// Client drives one long-lived WhatsApp Web session:
// Initialize → repeated (LocateConversation, SendText) → Close.
// It owns the session exclusively; all operations are sequential.
type Client struct {
	cfg   internal.WhatsAppConfig
	pace  internal.PaceConfig
	drv   driver
	state State
	rng   *rand.Rand
}

// NewClient creates a transport over a real Chrome session
func NewClient(cfg internal.WhatsAppConfig, pace internal.PaceConfig) *Client {
	return newClient(cfg, pace, newChromeDriver(cfg))
}

func newClient(cfg internal.WhatsAppConfig, pace internal.PaceConfig, drv driver) *Client {
	return &Client{
		cfg:  cfg,
		pace: pace,
		drv:  drv,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// State returns the current session state
func (c *Client) State() State {
	return c.state
}

// Initialize launches the browser with the persisted profile, navigates to
// WhatsApp Web and waits out the handshake: either the chat list appears
// directly (already authenticated) or a QR code shows up and a human scans
// it within the handshake ceiling. Failure here is fatal for the run.
func (c *Client) Initialize(ctx context.Context) error {
	if c.state != StateUninitialized {
		return &InitializationError{Step: "launch", Err: fmt.Errorf("session already %s", c.state)}
	}

	internal.LogInfo("launching WhatsApp Web...")
	c.state = StateLaunching
	if err := c.drv.Start(ctx); err != nil {
		return &InitializationError{Step: "launch", Err: err}
	}

	if err := c.drv.Navigate(ctx, c.cfg.URL); err != nil {
		return &InitializationError{Step: "navigate", Err: err}
	}
	internal.LogInfo("navigated to %s", c.cfg.URL)

	c.state = StateAwaitingHandshake
	surface, err := c.drv.WaitAny(ctx, []condition{
		{name: surfaceQR, selector: selQRCanvas},
		{name: surfaceChatList, selector: selChatList},
	}, c.cfg.SurfaceTimeout.Std())
	if err != nil {
		return &InitializationError{Step: "handshake", Err: err}
	}

	if surface == surfaceQR {
		internal.LogInfo("QR code detected - please scan with your phone")
		if _, err := c.drv.WaitAny(ctx, []condition{
			{name: surfaceChatList, selector: selChatList},
		}, c.cfg.HandshakeTimeout.Std()); err != nil {
			return &InitializationError{Step: "handshake", Err: err}
		}
		internal.LogInfo("QR code scanned successfully")
	}

	// Let the UI settle before acting on it
	c.drv.Sleep(c.cfg.ReadySettle.Std())
	c.state = StateReady
	internal.LogInfo("WhatsApp Web is ready")
	return nil
}

// LocateConversation opens search, submits identifier and selects the first
// matching conversation. Absence of a match is a business outcome, not a
// transport fault: it returns (false, nil). The search surface is cleared
// on every path so the next call starts from a neutral state. Calling
// before Initialize succeeds is a PreconditionError.
func (c *Client) LocateConversation(ctx context.Context, identifier string) (bool, error) {
	if c.state != StateReady && c.state != StateConversationSelected {
		return false, &PreconditionError{Op: "LocateConversation", State: c.state, Want: StateReady}
	}

	defer func() {
		if err := c.drv.PressKey(ctx, keyEscape); err != nil {
			internal.LogWarn("could not clear search: %v", err)
		}
		c.drv.Sleep(500 * time.Millisecond)
	}()

	if _, err := c.drv.WaitAny(ctx, []condition{
		{name: "search-box", selector: selSearchBox},
	}, c.cfg.OpTimeout.Std()); err != nil {
		internal.LogWarn("search box not available: %v", err)
		return false, nil
	}

	if err := c.drv.Click(ctx, selSearchBox); err != nil {
		internal.LogWarn("could not open search: %v", err)
		return false, nil
	}
	if err := c.drv.SendKeys(ctx, selSearchBox, identifier); err != nil {
		internal.LogWarn("could not type search query: %v", err)
		return false, nil
	}
	c.drv.Sleep(c.cfg.SearchSettle.Std())

	if _, err := c.drv.WaitAny(ctx, []condition{
		{name: "search-result", selector: selSearchResult},
	}, c.cfg.OpTimeout.Std()); err != nil {
		internal.LogWarn("chat not found for %s", identifier)
		return false, nil
	}

	if err := c.drv.Click(ctx, selSearchResult); err != nil {
		internal.LogWarn("could not select chat for %s: %v", identifier, err)
		return false, nil
	}
	c.drv.Sleep(time.Second)

	internal.LogInfo("found chat for %s", identifier)
	c.state = StateConversationSelected
	return true, nil
}

// SendText types text into the compose box of the selected conversation and
// submits it. Requires a conversation selected by the most recent
// LocateConversation; returns (false, nil) when the compose surface never
// appears within the bounded wait.
func (c *Client) SendText(ctx context.Context, text string) (bool, error) {
	if c.state != StateConversationSelected {
		return false, &PreconditionError{Op: "SendText", State: c.state, Want: StateConversationSelected}
	}

	if _, err := c.drv.WaitAny(ctx, []condition{
		{name: "compose-box", selector: selComposeBox},
	}, c.cfg.OpTimeout.Std()); err != nil {
		internal.LogError("message box not found: %v", err)
		return false, nil
	}

	if err := c.drv.Click(ctx, selComposeBox); err != nil {
		internal.LogError("could not focus message box: %v", err)
		return false, nil
	}
	if err := c.drv.SendKeys(ctx, selComposeBox, text); err != nil {
		internal.LogError("could not type message: %v", err)
		return false, nil
	}
	c.drv.Sleep(500 * time.Millisecond)

	if err := c.drv.PressKey(ctx, keyEnter); err != nil {
		internal.LogError("could not submit message: %v", err)
		return false, nil
	}
	c.drv.Sleep(time.Second)

	internal.LogInfo("message sent")
	return true, nil
}

// Pace sleeps a random duration drawn uniformly from the configured
// [min, max] interval. Spreads message timing to a human cadence; called by
// the dispatcher between recipients, never inside SendText, so failed sends
// do not also pay the delay.
func (c *Client) Pace() {
	min := c.pace.Min.Std()
	max := c.pace.Max.Std()
	delay := min
	if max > min {
		delay += time.Duration(c.rng.Int63n(int64(max-min) + 1))
	}
	internal.LogInfo("waiting %s...", delay)
	c.drv.Sleep(delay)
}

// SendToSelf delivers text to the operator's own conversation, used for
// per-event summaries and best-effort failure notices
func (c *Client) SendToSelf(ctx context.Context, text string) error {
	found, err := c.LocateConversation(ctx, c.cfg.SelfChat)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("self conversation %q not found", c.cfg.SelfChat)
	}

	sent, err := c.SendText(ctx, text)
	if err != nil {
		return err
	}
	if !sent {
		return fmt.Errorf("could not send to self conversation %q", c.cfg.SelfChat)
	}

	internal.LogInfo("message sent to self")
	return nil
}

// Close releases the session unconditionally. Idempotent: closing a closed
// or never-initialized session is a no-op, so it is safe on every failure
// path.
func (c *Client) Close() {
	if c.state == StateClosed {
		return
	}
	started := c.state != StateUninitialized
	if err := c.drv.Stop(); err != nil {
		internal.LogWarn("error closing browser: %v", err)
	}
	c.state = StateClosed
	if started {
		internal.LogInfo("WhatsApp browser closed")
	}
}

package internal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Transport is the chat session the dispatcher delivers through. The real
// implementation lives in internal/whatsapp; tests substitute a double that
// records calls.
type Transport interface {
	// LocateConversation selects the conversation for identifier, returning
	// false when no match exists
	LocateConversation(ctx context.Context, identifier string) (bool, error)
	// SendText sends text to the currently selected conversation, returning
	// false when the compose surface cannot be reached
	SendText(ctx context.Context, text string) (bool, error)
	// SendToSelf delivers text to the operator's own conversation
	SendToSelf(ctx context.Context, text string) error
	// Pace delays between consecutive outbound messages
	Pace()
}

// RunStats summarizes one dispatch run
type RunStats struct {
	Processed int // events fully processed and committed
	Skipped   int // events already in the ledger
	Failed    int // events left pending after an error
}

// Dispatcher turns pending reminder events into committed SentRecords:
// sequential delivery per recipient, one aggregated summary per event, and
// a ledger commit only after the whole event was processed
type Dispatcher struct {
	transport Transport
	directory *Directory
	ledger    *Ledger
	journal   *Journal // optional diagnostic sink
	now       func() time.Time
}

// NewDispatcher wires a dispatcher. journal may be nil.
func NewDispatcher(transport Transport, directory *Directory, ledger *Ledger, journal *Journal) *Dispatcher {
	return &Dispatcher{
		transport: transport,
		directory: directory,
		ledger:    ledger,
		journal:   journal,
		now:       time.Now,
	}
}

// Run processes reminders in order. Events already committed are skipped
// without touching the transport. An error on one event leaves it pending
// and never blocks the events after it; all per-event errors are joined
// into the returned error so the run can exit non-zero.
func (d *Dispatcher) Run(ctx context.Context, reminders []ReminderEvent) (RunStats, error) {
	var stats RunStats
	var errs []error

	for _, event := range reminders {
		if !d.ledger.IsPending(event.EventID) {
			LogInfo("already sent: %s", event.Title)
			stats.Skipped++
			continue
		}

		if err := d.processEvent(ctx, event); err != nil {
			LogError("event %s failed, left pending for next run: %v", event.EventID, err)
			stats.Failed++
			errs = append(errs, fmt.Errorf("event %s: %w", event.EventID, err))
			continue
		}
		stats.Processed++
	}

	return stats, errors.Join(errs...)
}

// processEvent attempts delivery to every recipient in declared order,
// sends the aggregated summary to the operator regardless of per-recipient
// outcomes, then commits the SentRecord. The commit is the last step: a
// crash before it leaves the event pending and the whole event retries from
// its first recipient on the next run.
func (d *Dispatcher) processEvent(ctx context.Context, event ReminderEvent) error {
	LogInfo("processing reminder: %s", event.Title)

	results := make([]RecipientResult, 0, len(event.Recipients))
	for _, name := range event.Recipients {
		LogInfo("processing person: %s", name)
		result := d.deliver(ctx, event, name)
		results = append(results, result)

		if d.journal != nil {
			if err := d.journal.Append(event.EventID, result); err != nil {
				LogWarn("could not journal outcome for %s: %v", name, err)
			}
		}

		// Pace only after recipients that reached the transport; an
		// unresolved contact costs nothing
		if result.Outcome != OutcomeContactNotFound {
			d.transport.Pace()
		}
	}

	summary := SummaryMessage(event, results, d.now())
	if err := d.transport.SendToSelf(ctx, summary); err != nil {
		LogWarn("failed to send summary to self: %v", err)
	}

	record := SentRecord{
		EventID:     event.EventID,
		Title:       event.Title,
		ProcessedAt: d.now(),
		Results:     results,
	}
	if err := d.ledger.Commit(record); err != nil {
		return err
	}

	LogInfo("completed processing: %s", event.Title)
	return nil
}

// deliver attempts delivery to one recipient and classifies the outcome.
// Every recipient yields exactly one result; nothing is silently dropped.
func (d *Dispatcher) deliver(ctx context.Context, event ReminderEvent, name string) RecipientResult {
	contact, ok := d.directory.Resolve(name)
	if !ok {
		LogWarn("contact not found: %s", name)
		return RecipientResult{Recipient: name, Outcome: OutcomeContactNotFound}
	}

	found, err := d.transport.LocateConversation(ctx, contact.Phone)
	if err != nil {
		return RecipientResult{Recipient: name, Outcome: OutcomeError, Detail: err.Error()}
	}
	if !found {
		LogWarn("chat not found for %s", name)
		return RecipientResult{Recipient: name, Outcome: OutcomeChatNotFound}
	}

	sent, err := d.transport.SendText(ctx, ReminderMessage(event))
	if err != nil {
		return RecipientResult{Recipient: name, Outcome: OutcomeError, Detail: err.Error()}
	}
	if !sent {
		return RecipientResult{Recipient: name, Outcome: OutcomeError, Detail: "failed to send message"}
	}

	LogInfo("sent reminder to %s", name)
	return RecipientResult{Recipient: name, Outcome: OutcomeDelivered}
}

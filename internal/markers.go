package internal

import "strings"

// ReminderMarker flags a calendar event for reminder dispatch when it
// appears anywhere in the title
const ReminderMarker = "🔔"

// ExtractReminders filters raw calendar events down to marked reminder
// events. Recipients come from the description, one name per line, in
// insertion order. Marked events with no recipients are dropped with a
// warning, never returned.
func ExtractReminders(events []RawEvent) []ReminderEvent {
	var reminders []ReminderEvent

	for _, event := range events {
		if !strings.Contains(event.Title, ReminderMarker) {
			continue
		}

		recipients := splitRecipients(event.Description)
		if len(recipients) == 0 {
			LogWarn("event %q has %s but no people listed", event.Title, ReminderMarker)
			continue
		}

		reminders = append(reminders, ReminderEvent{
			EventID:     event.ID,
			Title:       event.Title,
			ScheduledAt: event.StartTime,
			Recipients:  recipients,
		})

		LogInfo("parsed reminder: %s (%d people)", event.Title, len(recipients))
	}

	return reminders
}

// splitRecipients splits a description into trimmed non-blank lines
func splitRecipients(description string) []string {
	var names []string
	for _, line := range strings.Split(description, "\n") {
		name := strings.TrimSpace(line)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

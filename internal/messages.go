package internal

import (
	"fmt"
	"strings"
	"time"
)

// Fixed message templates, carried over from the original Hebrew wording.
// Not configurable by design.

// ReminderMessage builds the text sent to one recipient
func ReminderMessage(event ReminderEvent) string {
	return fmt.Sprintf(
		"היי! 👋\nתזכורת חברותית לפגישה מחר ב-%s.\nמחכה לראות אותך!",
		event.ScheduledAt.Format("15:04"),
	)
}

// SummaryMessage builds the per-event summary sent to the operator's own
// conversation, listing delivered and failed recipients in result order
func SummaryMessage(event ReminderEvent, results []RecipientResult, now time.Time) string {
	var delivered, failed []RecipientResult
	for _, r := range results {
		if r.Delivered() {
			delivered = append(delivered, r)
		} else {
			failed = append(failed, r)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 תזכורת: %s\n\n", event.Title)

	if len(delivered) > 0 {
		b.WriteString("✅ נשלח בהצלחה:\n")
		for _, r := range delivered {
			fmt.Fprintf(&b, "  • %s\n", r.Recipient)
		}
		b.WriteString("\n")
	}

	if len(failed) > 0 {
		b.WriteString("⚠️ לא נשלח:\n")
		for _, r := range failed {
			fmt.Fprintf(&b, "  • %s - %s\n", r.Recipient, failureReason(r))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "🕐 %s", now.Format("15:04"))
	return b.String()
}

// FailureNotice builds the best-effort notice sent to the operator when a
// run hits a fatal error
func FailureNotice(err error) string {
	return fmt.Sprintf("⚠️ kinderbell error:\n%v", err)
}

func failureReason(r RecipientResult) string {
	switch r.Outcome {
	case OutcomeContactNotFound:
		return "איש קשר לא נמצא"
	case OutcomeChatNotFound:
		return "צ'אט לא נמצא"
	default:
		return "שגיאה"
	}
}

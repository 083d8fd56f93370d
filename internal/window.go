package internal

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ClockTime is a wall-clock time of day, parsed from "HH:MM"
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM" into a ClockTime
func ParseClockTime(s string) (ClockTime, error) {
	var ct ClockTime
	if _, err := fmt.Sscanf(s, "%d:%d", &ct.Hour, &ct.Minute); err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if ct.Hour < 0 || ct.Hour > 23 || ct.Minute < 0 || ct.Minute > 59 {
		return ClockTime{}, fmt.Errorf("clock time %q out of range", s)
	}
	return ct, nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (ct *ClockTime) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseClockTime(raw)
	if err != nil {
		return err
	}
	*ct = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (ct ClockTime) MarshalYAML() (interface{}, error) {
	return ct.String(), nil
}

func (ct ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", ct.Hour, ct.Minute)
}

// minutes returns minutes since midnight
func (ct ClockTime) minutes() int {
	return ct.Hour*60 + ct.Minute
}

// Contains reports whether t falls inside the delivery window, boundaries
// inclusive. Only the wall-clock time of t is considered.
func (w WindowConfig) Contains(t time.Time) bool {
	current := t.Hour()*60 + t.Minute()
	return current >= w.Start.minutes() && current <= w.End.minutes()
}

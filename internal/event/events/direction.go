package events

import (
	"github.com/dshills/textdir/internal/direction"
	"github.com/dshills/textdir/internal/event/topic"
)

// Direction and settings topics.
const (
	// TopicDirectionChanged is published when a file's stored direction
	// is set, toggled, or cleared.
	TopicDirectionChanged topic.Topic = "direction.changed"

	// TopicSettingsChanged is published when one of the persisted
	// settings (default direction, remember-per-file) changes.
	TopicSettingsChanged topic.Topic = "settings.changed"
)

// DirectionChanged is published when a file's direction changes.
type DirectionChanged struct {
	// Path is the vault-relative path the change applies to.
	Path string

	// Direction is the new effective direction.
	Direction direction.Direction

	// Source describes what produced the change ("toggle", "set",
	// "clear", "rule", "detect").
	Source string
}

// Topic returns the topic this payload is published on.
func (DirectionChanged) Topic() topic.Topic { return TopicDirectionChanged }

// SettingsChanged is published when a persisted setting changes.
type SettingsChanged struct {
	// Key identifies the setting ("defaultDirection" or "rememberPerFile").
	Key string

	// Old is the previous value.
	Old any

	// New is the current value.
	New any
}

// Topic returns the topic this payload is published on.
func (SettingsChanged) Topic() topic.Topic { return TopicSettingsChanged }

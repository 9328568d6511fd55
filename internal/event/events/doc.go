// Package events defines strongly-typed payloads for the textdir event bus.
//
// Each payload struct carries a Topic method returning the topic constant it
// is published on, so callers can publish with event.Bus.Publish and let the
// bus route by payload type:
//
//	bus.Publish(ctx, events.FileOpened{Path: "notes/a.md"})
//
// Payloads are grouped by source:
//
//   - Vault events: file opened, created, changed, renamed, deleted
//   - Direction events: per-file direction changes, settings changes
package events

// Package events provides a small in-process event bus.
//
// The HTTP layer announces completed extractions as events instead of writing
// to the task list directly, so the task list and any future consumer can
// subscribe without the extraction endpoint knowing about them.
//
// The primary components are:
//   - Event: a typed, JSON-encoded notification
//   - EventHandler: interface for components that react to events
//   - EventEmitter: interface for components that publish events
package events

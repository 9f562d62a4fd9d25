// Package store defines the task persistence port and the errors shared by
// its implementations. Keeping the interface here lets the HTTP layer depend
// on task storage without knowing how tasks are held.
package store

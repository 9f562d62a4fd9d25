// Package domain defines the core business entities of the braindump service:
// the Task produced by AI extraction, and the errors shared by the layers that
// create and validate tasks. It has no dependencies on infrastructure packages.
package domain

// Package debug provides optional structured debug logging.
//
// When the LAYOUTKIT_DEBUG environment variable is set to a file path, debug
// messages are appended to that file as JSON lines with size-based rotation.
// Otherwise, logging is a no-op.
package debug

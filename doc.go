// Package layoutkit provides a declarative layout engine for native views.
//
// Layout trees are immutable values. Measuring and arranging a tree is pure
// and may run on any goroutine; building and configuring views happens only
// inside callbacks of a MainLoop, where a UIContext proves the caller owns
// the view hierarchy.
//
// Users import this single package for the complete public API: geometry,
// the Layout contract, composite layouts, reuse matching, the Applier and
// the Pipeline that ties background measurement to the UI loop.
package layoutkit

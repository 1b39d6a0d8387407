// Package layout holds the geometric value types shared by every layout node:
// points, sizes, rectangles, edges, alignment and flexibility.
//
// All types are plain comparable values. Nothing in this package allocates
// per call, blocks, or panics on malformed input; NaN, infinite and negative
// lengths are sanitized instead of propagated. Types are re-exported through
// the root layoutkit package for public consumption.
//
// The main entry point for placement is [Alignment.Position], which fits a
// measured [Size] into an assigned [Rect].
package layout

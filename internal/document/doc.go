// Package document ties the per-document collaborators together.
//
// Context carries the entity store, spatial index, undo history, text
// layout store, generation counter and change queue as one explicit
// handle. Everything that edits a document receives a *Context; there
// is no ambient engine state.
package document

// Package pager renders arbitrary-length item sequences through a fixed-size
// single-choice terminal menu.
//
// A List owns the page bookkeeping for one snapshot of items. Each
// render/interpret cycle builds the visible slice for the current page,
// surrounds it with navigation rows (previous/next page, go back, an optional
// filter toggle), shows the result through a menu.UI, and translates the raw
// answer back into a tagged Action. Sectioned lists additionally inject
// non-selectable "--- Section ---" header rows, computed from cumulative
// section lengths so page math is unaffected.
//
// Browse wraps the cycle in an explicit loop: page moves and no-op selections
// re-render, item selections run the caller's callback, and the loop ends on
// go-back or a callback-supplied outcome. Cancelling the underlying menu is
// treated as go-back, so every list screen always has a non-erroring exit.
package pager

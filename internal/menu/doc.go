// Package menu defines the cafe catalog types and the category grouping transform.
//
// Items and specials are immutable once decoded. Grouped is derived from a flat
// item slice by Group, which preserves first-seen category order and the
// relative order of items inside each category. Memo caches the last grouping
// so a renderer can ask for it on every frame without rebuilding it.
package menu

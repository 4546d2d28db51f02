// Package renderer formats engine results as markdown reports.
//
// Every renderer takes a computed value and returns a self-contained
// markdown document; nothing here computes, it only formats.
package renderer

import "strconv"

func shares(n int64) string { return strconv.FormatInt(n, 10) }

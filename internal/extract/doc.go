// Package extract turns fbref.com schedule and match-report pages into match
// records.
//
// Every structural assumption about the site's markup (table ids, column
// positions, footer layout) lives in markup.go. When the site changes its
// layout, that file and MarkupVersion are the only things that should need to
// change; callers depend on the Extractor interface.
package extract

// Package search implements the site-wide search behind the command palette
// overlay: a flat record index built from pluggable content sources, and a
// scoring/ranking pass over that index for each query.
//
// # Overview
//
// Records are produced once per Index lifetime by one or more Sources (the
// structured content document, the page crawler) and cached. Ranking is a pure
// function over the cached records: substring and acronym matching, positional
// scoring, three-way bucketing (whole-word/acronym, prefix, everything else)
// and a hard result cap.
//
// # Key behaviors
//
//   - Build-once index: the first Get builds, later Gets reuse. A failing
//     source simply contributes zero records; the build never fails.
//   - Case-insensitive matching against precomputed lowercase copies.
//   - Acronym expansion: a record may declare acronym keys ("ucla") mapping to
//     full phrases; querying the key matches and boosts the record.
//   - Course records (title prefix "Course — ") are deprioritized but never
//     excluded.
//   - Highlighting is a rendering transform over a copy of the text; regex
//     metacharacters in the query are always treated literally.
//
// # Usage
//
//	ix := search.NewIndex(contentSource, crawlerSource)
//	matches := search.Rank(ix.Get(ctx), "distributed systems")
//	for _, m := range matches {
//		fmt.Println(m.Record.Title, search.Highlight(m.Record, "distributed systems"))
//	}
package search

package crawler

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/ashutoshsundresh/folio/pkg/search"
)

// markerAttr is the opt-in attribute that names a searchable section. Its
// value becomes the record title.
const markerAttr = "data-section-title"

// anchorSlack: an anchor is skipped when its enclosing block's text is not at
// least this much longer than the anchor's own text. The block element gets a
// record anyway; a second, near-identical record for the link inside it would
// be a duplicate.
const anchorSlack = 10

// markerSel matches elements carrying the section-title marker.
const markerSel = "[" + markerAttr + "]"

// textElements are the tags the fallback walk considers text-bearing.
const textElements = "h1, h2, h3, h4, h5, h6, p, li, blockquote, a"

// Extract builds the records for one parsed page.
//
// Two passes: first, every leaf marked container (a marked element with no
// nested marked element) becomes one record titled by the marker value.
// Second, text-bearing elements outside page chrome and outside already
// captured containers each become one record, with the title resolved from
// the nearest marker ancestor, then the nearest heading of an enclosing
// semantic container, then the document title, then "Section".
func Extract(doc *goquery.Document, pagePath string) []search.Record {
	var records []search.Record

	add := func(title, text string, max int, sel *goquery.Selection) {
		text = search.Truncate(search.Normalize(text), max)
		if text == "" {
			return
		}
		id := fmt.Sprintf("page:%s:%d", pagePath, len(records))
		records = append(records, search.NewRecord(id, pagePath+anchorFor(sel), title, text, nil))
	}

	doc.Find(markerSel).Each(func(_ int, sel *goquery.Selection) {
		if sel.Find(markerSel).Length() > 0 {
			// Not a leaf; its nested markers are captured instead.
			return
		}
		title, _ := sel.Attr(markerAttr)
		add(title, sel.Text(), search.MaxSectionText, sel)
	})

	doc.Find(textElements).Each(func(_ int, sel *goquery.Selection) {
		if sel.ParentsFiltered("nav, footer, header, script, style").Length() > 0 {
			return
		}
		if captured(sel) {
			return
		}
		text := search.Normalize(sel.Text())
		if text == "" {
			return
		}
		if goquery.NodeName(sel) == "a" && redundantAnchor(sel, text) {
			return
		}
		add(resolveTitle(doc, sel), text, search.MaxElementText, sel)
	})

	return records
}

// captured reports whether sel sits inside a marked container that the first
// pass already turned into a record, i.e. a leaf marker.
func captured(sel *goquery.Selection) bool {
	marked := sel.Closest(markerSel)
	return marked.Length() > 0 && marked.Find(markerSel).Length() == 0
}

// redundantAnchor reports whether the anchor's enclosing block carries
// essentially the same text as the anchor itself.
func redundantAnchor(sel *goquery.Selection, anchorText string) bool {
	block := sel.ParentsFiltered("p, li, blockquote, h1, h2, h3, h4, h5, h6, div, section, article").First()
	if block.Length() == 0 {
		return false
	}
	blockText := search.Normalize(block.Text())
	return len(blockText) < len(anchorText)+anchorSlack
}

func resolveTitle(doc *goquery.Document, sel *goquery.Selection) string {
	if marked := sel.Closest(markerSel); marked.Length() > 0 {
		if title, ok := marked.Attr(markerAttr); ok && title != "" {
			return title
		}
	}

	if container := sel.Closest("section, article, main"); container.Length() > 0 {
		heading := search.Normalize(container.Find("h1, h2, h3, h4, h5, h6").First().Text())
		if heading != "" {
			return heading
		}
	}

	if title := search.Normalize(doc.Find("title").First().Text()); title != "" {
		return title
	}

	return "Section"
}

// anchorFor returns "#id" for the nearest self-or-ancestor element carrying
// an id attribute, or the empty string.
func anchorFor(sel *goquery.Selection) string {
	withID := sel.Closest("[id]")
	if withID.Length() == 0 {
		return ""
	}
	id, _ := withID.Attr("id")
	if id == "" {
		return ""
	}
	return "#" + id
}

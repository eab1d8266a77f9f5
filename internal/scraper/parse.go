package scraper

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"inferencebot/internal/wiki"
)

// eventLine matches the wikipast bullet notation:
//
//	1802.02.26 / Besançon. Naissance de Victor Hugo.
//
// Group 1 is the date, group 2 the optional location, group 3 the
// event description.
var eventLine = regexp.MustCompile(`^(\d{4}(?:\.\d{2}(?:\.\d{2})?)?)\s*(?:/\s*([^.]+?)\s*)?\.\s*(.+?)\.?\s*$`)

// parsePage walks the HTML, collects the text of every list item and
// decodes the ones that look like dated events. An item with a
// recognised keyword but an undecodable payload is dropped with a
// warning; the rest of the page still proceeds.
func parsePage(url string, r io.Reader, logger *zap.Logger) (wiki.PageRecord, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return wiki.PageRecord{}, fmt.Errorf("parse html: %w", err)
	}

	page := wiki.PageRecord{URL: url}
	for _, line := range listItems(doc) {
		if err := parseEventLine(line, &page); err != nil {
			logger.Warn("event dropped",
				zap.String("url", url), zap.String("line", line), zap.Error(err))
		}
	}
	return page, nil
}

// listItems returns the flattened text of every <li> element.
func listItems(doc *html.Node) []string {
	var items []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" {
			if text := strings.TrimSpace(nodeText(n)); text != "" {
				items = append(items, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return items
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// parseEventLine decodes one bullet line into page, when it carries a
// recognised event. Lines that do not look like events at all are
// ignored silently; lines that do but cannot be decoded return an
// error so the caller can log the drop.
func parseEventLine(line string, page *wiki.PageRecord) error {
	m := eventLine.FindStringSubmatch(line)
	if m == nil {
		return nil
	}

	date, err := wiki.ParseDate(m[1])
	if err != nil {
		return err
	}
	location := wiki.Loc(strings.TrimSpace(m[2]))
	desc := strings.TrimSpace(m[3])

	switch {
	case strings.HasPrefix(desc, "Naissance de "):
		person := strings.TrimSpace(strings.TrimPrefix(desc, "Naissance de "))
		if person == "" {
			return fmt.Errorf("birth without a person")
		}
		page.Births = append(page.Births, &wiki.Birth{Person: person, Date: date})

	case strings.HasPrefix(desc, "Décès de "), strings.HasPrefix(desc, "Mort de "):
		person := strings.TrimSpace(strings.TrimPrefix(
			strings.TrimPrefix(desc, "Décès de "), "Mort de "))
		if person == "" {
			return fmt.Errorf("death without a person")
		}
		page.Deaths = append(page.Deaths, &wiki.Death{Person: person, Date: date})

	case strings.HasPrefix(desc, "Rencontre entre "):
		rest := strings.TrimPrefix(desc, "Rencontre entre ")
		p1, p2, ok := splitPair(rest)
		if !ok {
			return fmt.Errorf("encounter without two persons")
		}
		page.Encounters = append(page.Encounters, &wiki.Encounter{
			Person1: p1, Person2: p2, Location: location, Date: date,
		})

	case strings.HasPrefix(desc, "Séjour de "), strings.HasPrefix(desc, "Position de "):
		person := strings.TrimSpace(strings.TrimPrefix(
			strings.TrimPrefix(desc, "Séjour de "), "Position de "))
		if person == "" {
			return fmt.Errorf("position without a person")
		}
		page.Positions = append(page.Positions, &wiki.Position{
			Person: person, Location: location, Date: date,
		})

	case strings.HasPrefix(desc, "Élection de "), strings.HasPrefix(desc, "Election de "):
		rest := strings.TrimPrefix(strings.TrimPrefix(desc, "Élection de "), "Election de ")
		person, function := rest, ""
		for _, sep := range []string{" en tant que ", " au poste de ", " comme "} {
			if p, f, found := strings.Cut(rest, sep); found {
				person, function = strings.TrimSpace(p), strings.TrimSpace(f)
				break
			}
		}
		person = strings.TrimSpace(person)
		if person == "" {
			return fmt.Errorf("election without a person")
		}
		page.Elections = append(page.Elections, &wiki.Election{
			Person: person, Function: function, Date: date, Location: location,
		})

	case strings.HasPrefix(desc, "Mariage de "):
		rest := strings.TrimPrefix(desc, "Mariage de ")
		p1, p2, ok := splitPair(rest)
		if !ok {
			return fmt.Errorf("wedding without two persons")
		}
		page.Weddings = append(page.Weddings, &wiki.Wedding{
			Person1: p1, Person2: p2, Date: date, Location: location,
		})
	}
	return nil
}

// splitPair cuts "A et B" (or "A et de B", "A avec B") into the two
// person names.
func splitPair(s string) (string, string, bool) {
	for _, sep := range []string{" et de ", " et ", " avec "} {
		if a, b, found := strings.Cut(s, sep); found {
			a, b = strings.TrimSpace(a), strings.TrimSpace(b)
			if a != "" && b != "" {
				return a, b, true
			}
		}
	}
	return "", "", false
}

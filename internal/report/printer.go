// Package report renders derived error facts into wiki markup and
// publishes the summary back to the wiki.
package report

import (
	"fmt"
	"strings"

	"inferencebot/internal/checker"
	"inferencebot/internal/logic"
)

// Line is one rendered inconsistency with the pages it implicates.
type Line struct {
	Message string
	Pages   []string
}

// Format renders every error fact into its French wiki message. Facts
// whose name or shape is unknown are skipped; the engine only emits
// the shapes below, so a skip means a rulebase/report mismatch, not
// bad input.
func Format(facts []logic.Predicate) []Line {
	var lines []Line
	for _, f := range facts {
		if line, ok := formatFact(f); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

func formatFact(f logic.Predicate) (Line, bool) {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		s, ok := a.(logic.Symbol)
		if !ok {
			return Line{}, false
		}
		args[i] = s.Name
	}

	switch {
	case f.Name == checker.ErrDate && len(args) == 5:
		// person, d1, d2, url1, url2
		return Line{
			Message: fmt.Sprintf("%s : [[%s]] né en %s et mort en %s", f.Name, args[0], args[1], args[2]),
			Pages:   pages(args[3], args[4]),
		}, true

	case f.Name == checker.ErrEncounter && len(args) == 7:
		// date, loc1, loc2, p1, p2, url1, url2
		return Line{
			Message: fmt.Sprintf("%s : [[%s]] et [[%s]] se sont rencontrés à [[%s]] et à [[%s]] en même temps à la date %s",
				f.Name, args[3], args[4], args[1], args[2], args[0]),
			Pages: pages(args[5], args[6]),
		}, true

	case f.Name == checker.ErrElection && len(args) == 7:
		// person, function, electionDate, otherDate, location, url1, url2
		return Line{
			Message: fmt.Sprintf("%s : [[%s]] (%s / %s) est élu en %s à [[%s]]",
				f.Name, args[0], args[2], args[3], args[2], args[4]),
			Pages: pages(args[5], args[6]),
		}, true

	case f.Name == checker.ErrMarriage && len(args) == 7:
		// p1, p2, weddingDate, otherDate, location, url1, url2
		return Line{
			Message: fmt.Sprintf("%s : [[%s]] (%s / %s) et [[%s]] se marient le %s à [[%s]]",
				f.Name, args[0], args[2], args[3], args[1], args[2], args[4]),
			Pages: pages(args[5], args[6]),
		}, true

	case f.Name == checker.ErrMarriage && len(args) == 6:
		// divorce shape: p1, p2, d1, d2, url1, url2
		return Line{
			Message: fmt.Sprintf("%s : [[%s]] et [[%s]] se marient en %s puis à nouveau en %s",
				f.Name, args[0], args[1], args[2], args[3]),
			Pages: pages(args[4], args[5]),
		}, true
	}
	return Line{}, false
}

// pages dedups the implicated URLs, keeping order.
func pages(urls ...string) []string {
	var out []string
	for _, u := range urls {
		if u == "" {
			continue
		}
		dup := false
		for _, seen := range out {
			if seen == u {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, u)
		}
	}
	return out
}

// Bulletize renders the messages as the wiki bullet list published on
// the summary page.
func Bulletize(lines []Line) string {
	messages := make([]string, len(lines))
	for i, l := range lines {
		messages[i] = l.Message
	}
	return bulletList(messages)
}

// bulletList renders messages as wiki bullets.
func bulletList(messages []string) string {
	if len(messages) == 0 {
		return ""
	}
	var b strings.Builder
	for _, m := range messages {
		b.WriteString("* ")
		b.WriteString(m)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// GroupByPage maps each implicated page URL to its messages, keeping
// first-seen page order so the writer publishes deterministically.
func GroupByPage(lines []Line) ([]string, map[string][]string) {
	var order []string
	grouped := make(map[string][]string)
	for _, l := range lines {
		for _, page := range l.Pages {
			if _, seen := grouped[page]; !seen {
				order = append(order, page)
			}
			grouped[page] = append(grouped[page], l.Message)
		}
	}
	return order, grouped
}

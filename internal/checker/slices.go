package checker

import (
	"inferencebot/internal/logic"
	"inferencebot/internal/wiki"
)

// event constrains the gather helper to the page event types.
type event interface {
	comparable
	ToPredicate(url string) logic.Predicate
}

// gather walks every page, filters nil entries, inserts one direct
// fact per event occurrence (tagged with that page's URL) and returns
// the distinct events for pairwise relation building. The raw lists
// repeat events across pages, so the distinct set matters: relation
// facts are quadratic in it.
func gather[E event](kb *logic.KnowledgeBase, pages []wiki.PageRecord, pick func(wiki.PageRecord) []*E) ([]E, error) {
	seen := make(map[E]struct{})
	var events []E
	for _, page := range pages {
		for _, e := range pick(page) {
			if e == nil {
				continue
			}
			if _, err := kb.AddFact((*e).ToPredicate(page.URL)); err != nil {
				return nil, err
			}
			if _, dup := seen[*e]; dup {
				continue
			}
			seen[*e] = struct{}{}
			events = append(events, *e)
		}
	}
	return events, nil
}

// addRelation inserts p when the relation holds (p non-nil).
func addRelation(kb *logic.KnowledgeBase, p *logic.Predicate) error {
	if p == nil {
		return nil
	}
	_, err := kb.AddFact(*p)
	return err
}

func births(p wiki.PageRecord) []*wiki.Birth         { return p.Births }
func deaths(p wiki.PageRecord) []*wiki.Death         { return p.Deaths }
func encounters(p wiki.PageRecord) []*wiki.Encounter { return p.Encounters }
func positions(p wiki.PageRecord) []*wiki.Position   { return p.Positions }
func elections(p wiki.PageRecord) []*wiki.Election   { return p.Elections }
func weddings(p wiki.PageRecord) []*wiki.Wedding     { return p.Weddings }

// deathBeforeBirthAdapter loads births and deaths and materialises
// before(deathDate, birthDate) across every death × birth pair.
func deathBeforeBirthAdapter(res *wiki.ScrapeResult, kb *logic.KnowledgeBase) error {
	bs, err := gather(kb, res.Data, births)
	if err != nil {
		return err
	}
	ds, err := gather(kb, res.Data, deaths)
	if err != nil {
		return err
	}
	for _, d := range ds {
		for _, b := range bs {
			if err := addRelation(kb, d.Date.IsBeforePredicate(b.Date)); err != nil {
				return err
			}
		}
	}
	return nil
}

// multiBirthAdapter materialises different(d_i, d_j) over distinct
// birth pairs. Pairing is strict (j > i): no self-pairs, and only one
// orientation of each pair, which keeps the slice from reporting the
// symmetric duplicate.
func multiBirthAdapter(res *wiki.ScrapeResult, kb *logic.KnowledgeBase) error {
	bs, err := gather(kb, res.Data, births)
	if err != nil {
		return err
	}
	for i := 0; i < len(bs); i++ {
		for j := i + 1; j < len(bs); j++ {
			if err := addRelation(kb, bs[i].Date.IsDifferentPredicate(bs[j].Date)); err != nil {
				return err
			}
		}
	}
	return nil
}

// multiDeathAdapter mirrors multiBirthAdapter over deaths.
func multiDeathAdapter(res *wiki.ScrapeResult, kb *logic.KnowledgeBase) error {
	ds, err := gather(kb, res.Data, deaths)
	if err != nil {
		return err
	}
	for i := 0; i < len(ds); i++ {
		for j := i + 1; j < len(ds); j++ {
			if err := addRelation(kb, ds[i].Date.IsDifferentPredicate(ds[j].Date)); err != nil {
				return err
			}
		}
	}
	return nil
}

// encounterAdapter materialises far(encounterLoc, positionLoc) for
// pairs involving the same person on the same date.
func encounterAdapter(res *wiki.ScrapeResult, kb *logic.KnowledgeBase) error {
	es, err := gather(kb, res.Data, encounters)
	if err != nil {
		return err
	}
	ps, err := gather(kb, res.Data, positions)
	if err != nil {
		return err
	}
	for _, e := range es {
		for _, p := range ps {
			if e.Date != p.Date {
				continue
			}
			if p.Person != e.Person1 && p.Person != e.Person2 {
				continue
			}
			if err := addRelation(kb, e.Location.IsFarPredicate(p.Location)); err != nil {
				return err
			}
		}
	}
	return nil
}

// electionBeforeBirthAdapter materialises before(electionDate,
// birthDate) across election × birth pairs. The rule joins on the
// person, so the date relation can stay unfiltered.
func electionBeforeBirthAdapter(res *wiki.ScrapeResult, kb *logic.KnowledgeBase) error {
	es, err := gather(kb, res.Data, elections)
	if err != nil {
		return err
	}
	bs, err := gather(kb, res.Data, births)
	if err != nil {
		return err
	}
	for _, e := range es {
		for _, b := range bs {
			if err := addRelation(kb, e.Date.IsBeforePredicate(b.Date)); err != nil {
				return err
			}
		}
	}
	return nil
}

// electionAfterDeathAdapter materialises before(deathDate,
// electionDate) across election × death pairs.
func electionAfterDeathAdapter(res *wiki.ScrapeResult, kb *logic.KnowledgeBase) error {
	es, err := gather(kb, res.Data, elections)
	if err != nil {
		return err
	}
	ds, err := gather(kb, res.Data, deaths)
	if err != nil {
		return err
	}
	for _, e := range es {
		for _, d := range ds {
			if err := addRelation(kb, d.Date.IsBeforePredicate(e.Date)); err != nil {
				return err
			}
		}
	}
	return nil
}

// marriageBeforeBirthAdapter materialises before(weddingDate,
// birthDate) for weddings and the births of their spouses.
func marriageBeforeBirthAdapter(res *wiki.ScrapeResult, kb *logic.KnowledgeBase) error {
	ws, err := gather(kb, res.Data, weddings)
	if err != nil {
		return err
	}
	bs, err := gather(kb, res.Data, births)
	if err != nil {
		return err
	}
	for _, w := range ws {
		for _, b := range bs {
			if b.Person != w.Person1 && b.Person != w.Person2 {
				continue
			}
			if err := addRelation(kb, w.Date.IsBeforePredicate(b.Date)); err != nil {
				return err
			}
		}
	}
	return nil
}

// marriageAfterDeathAdapter materialises before(deathDate,
// weddingDate) for weddings and the deaths of their spouses.
func marriageAfterDeathAdapter(res *wiki.ScrapeResult, kb *logic.KnowledgeBase) error {
	ws, err := gather(kb, res.Data, weddings)
	if err != nil {
		return err
	}
	ds, err := gather(kb, res.Data, deaths)
	if err != nil {
		return err
	}
	for _, w := range ws {
		for _, d := range ds {
			if d.Person != w.Person1 && d.Person != w.Person2 {
				continue
			}
			if err := addRelation(kb, d.Date.IsBeforePredicate(w.Date)); err != nil {
				return err
			}
		}
	}
	return nil
}

// divorceAdapter materialises before() between the dated weddings of
// the same couple. Both orientations are attempted; IsBeforePredicate
// keeps only the one that holds, so page order does not matter.
func divorceAdapter(res *wiki.ScrapeResult, kb *logic.KnowledgeBase) error {
	ws, err := gather(kb, res.Data, weddings)
	if err != nil {
		return err
	}
	for i := 0; i < len(ws); i++ {
		for j := i + 1; j < len(ws); j++ {
			a, b := ws[i], ws[j]
			if a.Person1 != b.Person1 || a.Person2 != b.Person2 {
				continue
			}
			if a.Date == b.Date {
				continue
			}
			if err := addRelation(kb, a.Date.IsBeforePredicate(b.Date)); err != nil {
				return err
			}
			if err := addRelation(kb, b.Date.IsBeforePredicate(a.Date)); err != nil {
				return err
			}
		}
	}
	return nil
}

package reconcile

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type identityGroup struct {
	key     string
	primary int
	roles   []Record
	members []Record
}

func (g *identityGroup) add(rec Record) {
	g.members = append(g.members, rec)
	for _, r := range g.roles {
		if r.Position == rec.Position {
			return
		}
	}
	g.roles = append(g.roles, rec)
	if len(g.roles) > 1 && RolePriority(rec.Position) < RolePriority(g.roles[g.primary].Position) {
		g.primary = len(g.roles) - 1
	}
}

// merged folds every member of the group into its primary record.
func (g *identityGroup) merged() Record {
	p := g.roles[g.primary]
	sources := splitSources(p.Source)
	events := append([]string{}, p.SelectedEvents...)
	for _, m := range g.members {
		sources = uniqueStrings(sources, splitSources(m.Source))
		events = uniqueStrings(events, m.SelectedEvents)
		if p.CompetitionEvent == "" {
			p.CompetitionEvent = m.CompetitionEvent
		}
		if p.PairPartner == "" {
			p.PairPartner = m.PairPartner
		}
		p.PairRegistered = p.PairRegistered || m.PairRegistered
		p.TeamRegistered = p.TeamRegistered || m.TeamRegistered
		p.SingleRegistered = p.SingleRegistered || m.SingleRegistered
	}
	p.Source = strings.Join(uniqueStrings(nil, sources), ",")
	p.SelectedEvents = uniqueStrings(nil, events)
	p.IsPrimaryRole = true
	return p
}

func splitSources(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// mergeRecords groups records by uniqueKey. Each group yields its merged
// primary (lowest role priority, earliest on tie) followed by one secondary
// record per other distinct position, keyed "<uniqueKey>_<position>".
// Groups keep first-encounter order.
func mergeRecords(records []Record) []Record {
	groups := make(map[string]*identityGroup)
	var order []*identityGroup
	for _, rec := range records {
		g, ok := groups[rec.UniqueKey]
		if !ok {
			g = &identityGroup{key: rec.UniqueKey}
			groups[rec.UniqueKey] = g
			order = append(order, g)
		}
		g.add(rec)
	}

	out := make([]Record, 0, len(records))
	for _, g := range order {
		out = append(out, g.merged())
		for i, r := range g.roles {
			if i == g.primary {
				continue
			}
			r.UniqueKey = g.key + "_" + r.Position
			r.IsPrimaryRole = false
			out = append(out, r)
		}
	}
	return out
}

// sortRecords orders by role priority, then by name under the collation of
// locale. Equal keys keep their merge order.
func sortRecords(records []Record, locale language.Tag) {
	col := collate.New(locale)
	sort.SliceStable(records, func(i, j int) bool {
		pi, pj := RolePriority(records[i].Position), RolePriority(records[j].Position)
		if pi != pj {
			return pi < pj
		}
		return col.CompareString(records[i].Name, records[j].Name) < 0
	})
}

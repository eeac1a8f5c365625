package dumper

import (
	"github.com/msto63/tabwerk/internal/robot/model"
	"github.com/msto63/tabwerk/internal/robot/section"
	"github.com/msto63/tabwerk/internal/robot/token"
)

// slot is one region of the output: a passthrough region of the source
// or a table header with the elements dumped below it
type slot struct {
	table  model.TableKind
	region token.Interval // source lines, Start -1 when the table is new
	verb   bool           // copy the region verbatim
	header *model.TableHeader

	elements []*model.Element
	blocks   []*model.Block
}

var sectionTables = map[section.Type]model.TableKind{
	section.TypeSettings:  model.TableSettings,
	section.TypeVariables: model.TableVariables,
	section.TypeTestCases: model.TableTestCases,
	section.TypeKeywords:  model.TableKeywords,
}

// plan lays out the output: source regions in file order, then headers
// created in memory, then synthesized headers for tables that have
// elements but no header
func plan(f *model.File, sections []*section.Section, settings []*model.Element) []*slot {
	var slots []*slot
	for _, s := range sections {
		kind, ok := sectionTables[s.Type]
		if !ok {
			slots = append(slots, &slot{region: s.Lines(), verb: true})
			continue
		}
		sl := &slot{table: kind, region: s.Lines()}
		for _, h := range f.HeadersOf(kind) {
			if !h.IsNew() && h.Span.Start == sl.region.Start {
				sl.header = h
			}
		}
		slots = append(slots, sl)
	}
	for _, h := range f.Headers() {
		if h.IsNew() {
			slots = append(slots, &slot{table: h.Table, region: token.Interval{Start: -1, End: -1}, header: h})
		}
	}

	target := func(kind model.TableKind, span token.Interval) *slot {
		var last *slot
		for _, sl := range slots {
			if sl.verb || sl.table != kind {
				continue
			}
			if span.Start >= 0 && sl.region.Start >= 0 &&
				span.Start >= sl.region.Start && span.Start < sl.region.End {
				return sl
			}
			last = sl
		}
		if last == nil {
			last = &slot{
				table:  kind,
				region: token.Interval{Start: -1, End: -1},
				header: model.NewTableHeader(kind),
			}
			slots = append(slots, last)
		}
		return last
	}

	for _, e := range settings {
		sl := target(model.TableSettings, e.Span)
		sl.elements = append(sl.elements, e)
	}
	for _, e := range f.Variables.Elements {
		sl := target(model.TableVariables, e.Span)
		sl.elements = append(sl.elements, e)
	}
	for _, b := range f.TestCases.Blocks {
		sl := target(model.TableTestCases, b.Span)
		sl.blocks = append(sl.blocks, b)
	}
	for _, b := range f.Keywords.Blocks {
		sl := target(model.TableKeywords, b.Span)
		sl.blocks = append(sl.blocks, b)
	}
	return slots
}

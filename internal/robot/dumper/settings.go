package dumper

import (
	"errors"
	"fmt"
	"sort"

	"github.com/msto63/tabwerk/internal/robot/model"
)

// ErrSettingsDiverged reports that the imports or metadata sub-list of
// the settings table no longer matches its element list
var ErrSettingsDiverged = errors.New("settings sub-list diverged from element list")

// RepositionError describes a failed reposition of a settings sub-list
type RepositionError struct {
	List  string // "imports" or "metadata"
	Slots int    // matching entries in the element list
	Items int    // entries in the sub-list
	Stray *model.Element
}

// Error implements error
func (e *RepositionError) Error() string {
	if e.Stray != nil {
		return fmt.Sprintf("%s: %s entry %s not in settings", ErrSettingsDiverged, e.List, e.Stray.Kind)
	}
	return fmt.Sprintf("%s: %d %s slots, %d entries", ErrSettingsDiverged, e.Slots, e.List, e.Items)
}

// Unwrap lets errors.Is match ErrSettingsDiverged
func (e *RepositionError) Unwrap() error {
	return ErrSettingsDiverged
}

// settingRank is the category order of the settings table
var settingRank = map[model.ElementKind]int{
	model.KindDefaultTags:     0,
	model.KindDocumentation:   1,
	model.KindForceTags:       2,
	model.KindSuiteSetup:      3,
	model.KindSuiteTeardown:   4,
	model.KindTestSetup:       5,
	model.KindTestTeardown:    6,
	model.KindTestTemplate:    7,
	model.KindTestTimeout:     8,
	model.KindUnknownSetting:  9,
	model.KindMetadata:        10,
	model.KindLibrary:         11,
	model.KindResource:        11,
	model.KindVariablesImport: 11,
}

func rank(k model.ElementKind) int {
	if r, ok := settingRank[k]; ok {
		return r
	}
	return settingRank[model.KindUnknownSetting]
}

// orderSettings returns the dump order of the settings. Parsed elements
// keep their order. New imports and metadata go next to their neighbours
// in the sub-list, other new settings behind the last element of the same
// or an earlier category. Imports and metadata then take their slots in
// the order of their sub-lists.
func orderSettings(t *model.SettingTable, normalize bool) ([]*model.Element, error) {
	list := sortSettings(t, normalize)
	if err := reposition(list, t.Imports, "imports", model.ElementKind.IsImport); err != nil {
		return nil, err
	}
	isMeta := func(k model.ElementKind) bool { return k == model.KindMetadata }
	if err := reposition(list, t.Metadata, "metadata", isMeta); err != nil {
		return nil, err
	}
	return list, nil
}

func sortSettings(t *model.SettingTable, normalize bool) []*model.Element {
	if normalize {
		out := append([]*model.Element(nil), t.Elements...)
		sort.SliceStable(out, func(i, j int) bool {
			return rank(out[i].Kind) < rank(out[j].Kind)
		})
		return out
	}

	var out []*model.Element
	for _, e := range t.Elements {
		if !e.IsNew() {
			out = append(out, e)
		}
	}
	for _, e := range t.Elements {
		if !e.IsNew() {
			continue
		}
		var ok bool
		switch {
		case e.Kind.IsImport():
			out, ok = insertNear(out, t.Imports, e)
		case e.Kind == model.KindMetadata:
			out, ok = insertNear(out, t.Metadata, e)
		}
		if !ok {
			out = insertAt(out, rankSlot(out, e), e)
		}
	}
	return out
}

// rankSlot returns the index behind the last element of the same or an
// earlier category
func rankSlot(list []*model.Element, e *model.Element) int {
	at := 0
	for i, x := range list {
		if rank(x.Kind) <= rank(e.Kind) {
			at = i + 1
		}
	}
	return at
}

// insertNear places e next to its neighbours in the sub-list
func insertNear(list, sub []*model.Element, e *model.Element) ([]*model.Element, bool) {
	k := indexOf(sub, e)
	if k < 0 {
		return list, false
	}
	for j := k - 1; j >= 0; j-- {
		if at := indexOf(list, sub[j]); at >= 0 {
			return insertAt(list, at+1, e), true
		}
	}
	for j := k + 1; j < len(sub); j++ {
		if at := indexOf(list, sub[j]); at >= 0 {
			return insertAt(list, at, e), true
		}
	}
	return list, false
}

func insertAt(list []*model.Element, at int, e *model.Element) []*model.Element {
	list = append(list, nil)
	copy(list[at+1:], list[at:])
	list[at] = e
	return list
}

func indexOf(list []*model.Element, e *model.Element) int {
	for i, x := range list {
		if x == e {
			return i
		}
	}
	return -1
}

// reposition fills the slots of list that hold sub-list kinds with the
// sub-list entries, in sub-list order
func reposition(list, sub []*model.Element, name string, member func(model.ElementKind) bool) error {
	var slots []int
	inList := make(map[*model.Element]bool, len(list))
	for i, e := range list {
		if member(e.Kind) {
			slots = append(slots, i)
			inList[e] = true
		}
	}
	if len(slots) != len(sub) {
		return &RepositionError{List: name, Slots: len(slots), Items: len(sub)}
	}

	seen := make(map[*model.Element]bool, len(sub))
	for _, e := range sub {
		if !inList[e] || seen[e] {
			return &RepositionError{List: name, Slots: len(slots), Items: len(sub), Stray: e}
		}
		seen[e] = true
	}

	for i, at := range slots {
		list[at] = sub[i]
	}
	return nil
}

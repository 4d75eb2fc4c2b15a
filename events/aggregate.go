package events

import "sort"

// SourceResult pairs one adapter's translated events with its source tag.
// Aggregate receives results in the order the adapters were queried.
type SourceResult struct {
	Source Source
	Events Events
}

// Aggregate merges per-source result lists into one displayable list.
//
// De-duplication is keyed on (source, id): a later entry for the same key
// replaces the earlier one in place, which is what lets a server echo take
// over the list position of an optimistic local placeholder. User authored
// events are surfaced first, most recently created first; the remaining
// sources follow in query order, each keeping its own upstream ordering.
//
// Aggregate is pure and total: a source that failed simply does not appear
// in the input.
func Aggregate(results ...SourceResult) Events {
	merged := make(Events, 0)
	position := make(map[string]int)
	for _, res := range results {
		for _, ev := range res.Events {
			if ev.Source == "" {
				ev.Source = res.Source
			}
			if !ev.IsValid() {
				continue
			}
			if at, ok := position[ev.Key()]; ok {
				merged[at] = ev
				continue
			}
			position[ev.Key()] = len(merged)
			merged = append(merged, ev)
		}
	}

	local := make(Events, 0, len(merged))
	remote := make(Events, 0, len(merged))
	for _, ev := range merged {
		if ev.Source == SourceUser {
			local = append(local, ev)
		} else {
			remote = append(remote, ev)
		}
	}
	sort.SliceStable(local, func(i, j int) bool {
		return local[i].Created.After(local[j].Created)
	})

	return append(local, remote...)
}

package schedule

import "sort"

// ColumnInfo describes one session's horizontal placement within its overlap
// cluster. Width for rendering is 100% / MaxColumns.
type ColumnInfo struct {
	Column     int  `json:"column"`
	MaxColumns int  `json:"maxColumns"`
	HasOverlap bool `json:"hasOverlap"`
}

// Layout partitions a day's sessions into clusters connected by time overlap
// and assigns each session a column. The result is indexed by the session's
// position in items.
//
// Overlap is half-open interval intersection: a.start < b.end && b.start <
// a.end, so back-to-back sessions (10:00 end, 10:00 start) do not overlap
// while identical intervals always do. Clusters are connected components of
// the overlap relation: if A overlaps B and B overlaps C, all three share one
// cluster even when A and C are disjoint, and every member gets
// MaxColumns = cluster size. That deliberately over-allocates columns for
// chain-shaped clusters; the visual layout depends on it, so it stays.
//
// Within a cluster, members are ordered by (start ascending, end ascending),
// falling back to input order, making the assignment deterministic for a
// fixed input list.
func Layout(items []DayItem) []ColumnInfo {
	n := len(items)
	infos := make([]ColumnInfo, n)
	if n == 0 {
		return infos
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if overlaps(items[i], items[j]) {
				union(i, j)
			}
		}
	}

	clusters := make(map[int][]int)
	for i := 0; i < n; i++ {
		root := find(i)
		clusters[root] = append(clusters[root], i)
	}

	for _, members := range clusters {
		if len(members) == 1 {
			infos[members[0]] = ColumnInfo{Column: 0, MaxColumns: 1, HasOverlap: false}
			continue
		}
		sort.SliceStable(members, func(a, b int) bool {
			ia, ib := items[members[a]], items[members[b]]
			if ia.StartMinutes != ib.StartMinutes {
				return ia.StartMinutes < ib.StartMinutes
			}
			return ia.EndMinutes < ib.EndMinutes
		})
		for pos, idx := range members {
			infos[idx] = ColumnInfo{
				Column:     pos,
				MaxColumns: len(members),
				HasOverlap: true,
			}
		}
	}

	return infos
}

func overlaps(a, b DayItem) bool {
	return a.StartMinutes < b.EndMinutes && b.StartMinutes < a.EndMinutes
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package search

import "github.com/AleutianAI/AleutianMaze/services/maze/graph"

// frontier is the A* open set: a binary min-heap of NodeIDs.
//
// Ordering is ascending f, then ascending h, then ascending NodeID, so
// results are deterministic. Positions are mirrored in state.heapIndex,
// which lets the relaxation step test membership in O(1) and restore
// order with heap.Fix after a cost decrease.
//
// It implements container/heap.Interface; use heap.Push/Pop/Fix.
type frontier struct {
	ids []graph.NodeID
	st  *state
}

func newFrontier(st *state, capacity int) *frontier {
	return &frontier{ids: make([]graph.NodeID, 0, capacity), st: st}
}

func (q *frontier) Len() int { return len(q.ids) }

func (q *frontier) Less(i, j int) bool {
	a, b := q.ids[i], q.ids[j]
	if q.st.f[a] != q.st.f[b] {
		return q.st.f[a] < q.st.f[b]
	}
	if q.st.h[a] != q.st.h[b] {
		return q.st.h[a] < q.st.h[b]
	}
	return a < b
}

func (q *frontier) Swap(i, j int) {
	q.ids[i], q.ids[j] = q.ids[j], q.ids[i]
	q.st.heapIndex[q.ids[i]] = i
	q.st.heapIndex[q.ids[j]] = j
}

func (q *frontier) Push(x any) {
	id := x.(graph.NodeID)
	q.st.heapIndex[id] = len(q.ids)
	q.ids = append(q.ids, id)
}

func (q *frontier) Pop() any {
	n := len(q.ids)
	id := q.ids[n-1]
	q.ids = q.ids[:n-1]
	q.st.heapIndex[id] = notPending
	return id
}

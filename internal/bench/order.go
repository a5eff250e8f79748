// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package bench

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/addrummond/heap"
)

// Orders accepted by Order.
const (
	OrderInput   = "input"
	OrderSlowest = "slowest"
	OrderName    = "name"
)

// Order returns groups arranged for display: as given ("input"), slowest
// benchmark first ("slowest"), or alphabetically ("name"). The input slice is
// not modified.
func Order(groups []Group, order string) ([]Group, error) {
	switch order {
	case "", OrderInput:
		return slices.Clone(groups), nil
	case OrderName:
		ordered := slices.Clone(groups)
		slices.SortStableFunc(ordered, func(a, b Group) int {
			return cmp.Compare(a.Benchmark, b.Benchmark)
		})
		return ordered, nil
	case OrderSlowest:
		return slowestFirst(groups), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownOrder, order)
	}
}

func slowestFirst(groups []Group) []Group {
	var pending heap.Heap[rankedGroup, heap.Min]
	for i := range groups {
		heap.PushOrderable(&pending, rankedGroup{
			Largest: groups[i].Largest(),
			Seq:     i,
		})
	}
	ordered := make([]Group, 0, len(groups))
	for {
		next, ok := heap.PopOrderable(&pending)
		if !ok {
			break
		}
		ordered = append(ordered, groups[next.Seq])
	}
	return ordered
}

type rankedGroup struct {
	Largest float64
	Seq     int
}

// Cmp orders larger timings first, then earlier groups.
func (a *rankedGroup) Cmp(b *rankedGroup) int {
	if c := cmp.Compare(b.Largest, a.Largest); c != 0 {
		return c
	}
	return cmp.Compare(a.Seq, b.Seq)
}

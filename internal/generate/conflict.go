package generate

import (
	"math"
	"sort"

	"github.com/dataarchitect/architect/internal/model"
)

// NoPriority is the effective priority of a mapping that declares none. It
// sorts after every explicit priority.
const NoPriority = math.MaxInt

// ResolveStagingOrder orders the staging mappings feeding one anchor by
// (priority, system, tenant) ascending. Mappings that tie on all three keep
// their declaration order. The input slice is not modified.
func ResolveStagingOrder(mappings []*model.StagingMapping) []*model.StagingMapping {
	ordered := make([]*model.StagingMapping, len(mappings))
	copy(ordered, mappings)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if pa, pb := effectivePriority(a), effectivePriority(b); pa != pb {
			return pa < pb
		}
		if a.System != b.System {
			return a.System < b.System
		}
		return a.Tenant < b.Tenant
	})
	return ordered
}

func effectivePriority(m *model.StagingMapping) int {
	if m.Priority == nil {
		return NoPriority
	}
	return *m.Priority
}

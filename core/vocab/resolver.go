package vocab

import "github.com/trezcool/hagwon/core"

// ResolveAssignedSets returns the active sets given to the student, directly or through one of
// their classes, in assignment order and without duplicates.
//
// sets maps set IDs to sets; assignments to unknown sets are ignored.
func ResolveAssignedSets(studentID int64, classIDs []int64, assignments []Assignment, sets map[int64]Set) []Set {
	inClass := make(map[int64]bool, len(classIDs))
	for _, id := range classIDs {
		inClass[id] = true
	}

	seen := make(map[int64]bool)
	resolved := make([]Set, 0)
	for _, a := range assignments {
		eligible := (a.StudentID != nil && *a.StudentID == studentID) ||
			(a.ClassID != nil && inClass[*a.ClassID])
		if !eligible || seen[a.SetID] {
			continue
		}
		set, ok := sets[a.SetID]
		if !ok || !set.IsActive {
			continue
		}
		seen[a.SetID] = true
		resolved = append(resolved, set)
	}
	return resolved
}

// SetIDs returns the distinct set IDs referenced by the assignments.
func SetIDs(assignments []Assignment) []int64 {
	ids := make([]int64, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.SetID)
	}
	return core.UniqueInt64s(ids)
}

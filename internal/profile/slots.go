package profile

import (
	"fmt"
	"regexp"
	"strconv"
)

// slotPattern matches extra profile names such as "Profile #3"
var slotPattern = regexp.MustCompile(`^Profile\s?#(\d+)$`)

// SlotName returns the name of the extra profile in slot n
func SlotName(n int) string {
	return fmt.Sprintf("Profile #%d", n)
}

// SlotNumber extracts the slot number from an extra profile name
func SlotNumber(name string) (int, bool) {
	m := slotPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// nextSlot returns the smallest slot in [1, MaxExtraProfiles] not used by
// any existing profile name
func nextSlot(names []string) (int, bool) {
	if len(names)-1 >= MaxExtraProfiles {
		return 0, false
	}

	used := make(map[int]bool, len(names))
	for _, name := range names {
		if n, ok := SlotNumber(name); ok {
			used[n] = true
		}
	}

	for n := 1; n <= MaxExtraProfiles; n++ {
		if !used[n] {
			return n, true
		}
	}
	return 0, false
}

package registry

import (
	"sort"
	"strings"
)

// Bundle groups related packages for display.
type Bundle struct {
	Name     string
	Packages []string
}

// Bundles splits package names into ungrouped names and bundles. A name
// with more than two dots, such as com.unity.modules.audio, goes into the
// bundle named after its upper-cased third segment (MODULES); the rest stay
// ungrouped. Order within each list follows the input; bundles are sorted
// by name.
func Bundles(names []string) ([]string, []Bundle) {
	var flat []string
	index := map[string]int{}
	var bundles []Bundle

	for _, name := range names {
		if strings.Count(name, ".") <= 2 {
			flat = append(flat, name)
			continue
		}
		key := strings.ToUpper(strings.Split(name, ".")[2])
		i, ok := index[key]
		if !ok {
			i = len(bundles)
			index[key] = i
			bundles = append(bundles, Bundle{Name: key})
		}
		bundles[i].Packages = append(bundles[i].Packages, name)
	}

	sort.SliceStable(bundles, func(a, b int) bool { return bundles[a].Name < bundles[b].Name })
	return flat, bundles
}

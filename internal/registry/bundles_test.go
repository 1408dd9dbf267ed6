package registry

import (
	"slices"
	"testing"
)

func TestBundles(t *testing.T) {
	names := []string{
		"com.unity.textmeshpro",
		"com.unity.modules.audio",
		"com.unity.feature.2d",
		"com.unity.modules.ai",
		"com.unity.ugui",
	}
	flat, bundles := Bundles(names)

	if !slices.Equal(flat, []string{"com.unity.textmeshpro", "com.unity.ugui"}) {
		t.Errorf("flat = %v", flat)
	}
	if len(bundles) != 2 {
		t.Fatalf("bundles = %+v", bundles)
	}
	if bundles[0].Name != "FEATURE" || !slices.Equal(bundles[0].Packages, []string{"com.unity.feature.2d"}) {
		t.Errorf("bundles[0] = %+v", bundles[0])
	}
	if bundles[1].Name != "MODULES" || !slices.Equal(bundles[1].Packages, []string{"com.unity.modules.audio", "com.unity.modules.ai"}) {
		t.Errorf("bundles[1] = %+v", bundles[1])
	}
}

func TestBundlesEmpty(t *testing.T) {
	flat, bundles := Bundles(nil)
	if flat != nil || bundles != nil {
		t.Errorf("Bundles(nil) = %v, %v", flat, bundles)
	}
}

package providers

import "testing"

func TestQualityFromHeight_NearMisses(t *testing.T) {
	cases := []struct {
		height int
		want   Quality
	}{
		{360, Quality360},
		{480, Quality480},
		{718, Quality720},
		{720, Quality720},
		{1080, Quality1080},
		{1088, Quality1080},
		{2160, Quality4K},
		{2100, Quality4K},
	}
	for _, c := range cases {
		if got := QualityFromHeight(c.height); got != c.want {
			t.Errorf("QualityFromHeight(%d) = %q, want %q", c.height, got, c.want)
		}
	}
}

func TestQualityFromHeight_Unknown(t *testing.T) {
	for _, height := range []int{240, 820, 1500, 9000, 0} {
		if got := QualityFromHeight(height); got != QualityUnknown {
			t.Errorf("QualityFromHeight(%d) = %q, want unknown", height, got)
		}
	}
}

func TestQualityOrder(t *testing.T) {
	order := QualityOrder()
	if len(order) != 6 {
		t.Fatalf("expected 6 labels, got %d", len(order))
	}
	if order[0] != Quality360 {
		t.Errorf("expected 360 first, got %q", order[0])
	}
	if order[len(order)-1] != QualityUnknown {
		t.Errorf("expected unknown last, got %q", order[len(order)-1])
	}
}

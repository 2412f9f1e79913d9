package providers

// Quality is a canonical vertical-resolution label.
type Quality string

const (
	QualityUnknown Quality = "unknown"
	Quality360     Quality = "360"
	Quality480     Quality = "480"
	Quality720     Quality = "720"
	Quality1080    Quality = "1080"
	Quality4K      Quality = "4k"
)

var qualityHeights = []struct {
	height  int
	quality Quality
}{
	{360, Quality360},
	{480, Quality480},
	{720, Quality720},
	{1080, Quality1080},
	{2160, Quality4K},
}

// QualityOrder lists all canonical labels from lowest to highest, with
// unknown last. Used wherever a deterministic iteration order over quality
// labels is needed.
func QualityOrder() []Quality {
	return []Quality{Quality360, Quality480, Quality720, Quality1080, Quality4K, QualityUnknown}
}

// QualityFromHeight maps a vertical resolution in pixels to the closest
// canonical label. Encoders rarely produce exact heights, so anything within
// 100 pixels of a canonical height counts; everything else is unknown.
func QualityFromHeight(height int) Quality {
	closest := qualityHeights[0]
	for _, qh := range qualityHeights[1:] {
		if abs(height-qh.height) < abs(height-closest.height) {
			closest = qh
		}
	}
	if abs(height-closest.height) < 100 {
		return closest.quality
	}
	return QualityUnknown
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

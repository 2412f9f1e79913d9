package resolver

// MergeHeaders merges header maps left to right, later maps winning on
// conflict. The same merge backs both the playlist fetch and the proxyHeaders
// sent to playback clients, so precedence stays identical in both places.
func MergeHeaders(maps ...map[string]string) map[string]string {
	merged := map[string]string{}
	for _, m := range maps {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}

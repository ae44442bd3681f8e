package features

import "unicode/utf16"

// Bucket places a user in a rollout bucket in [0, 100) for a feature.
//
// The fold is h = (h<<5) - h + c over the UTF-16 code units of userID+name in
// wrapping 32-bit arithmetic, matching the web app's bucketing so both sides
// put the same user in the same bucket.
func Bucket(userID string, name Name) int {
	var h int32
	for _, c := range utf16.Encode([]rune(userID + string(name))) {
		h = (h << 5) - h + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v % 100)
}

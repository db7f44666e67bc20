// core/constraint/highlight.go
package constraint

// Highlight turns a wrong-pairs array into flat [start, end] index pairs
// (both inclusive) covering each run of mismatched positions. A run still
// open at the end is closed at the last position.
func Highlight(wrongPairs []int) []int {
	var ranges []int
	cur := 0
	j := 0
	for ; j < len(wrongPairs); j++ {
		bit := 0
		if wrongPairs[j] == 1 {
			bit = 1
		}
		if cur^bit != 0 {
			// turning on: start at j; turning off: end at j-1
			ranges = append(ranges, j-cur)
			cur = bit
		}
	}
	if len(ranges)%2 == 1 {
		ranges = append(ranges, j-1)
	}
	return ranges
}

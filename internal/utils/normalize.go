package utils

// CreateRankList returns 1-based display ranks for count already-sorted items.
// Items with equal scores share a rank.
func CreateRankList(scores []int) []uint32 {
	ranks := make([]uint32, len(scores))
	for i := range scores {
		switch {
		case i == 0:
			ranks[i] = 1
		case scores[i] == scores[i-1]:
			ranks[i] = ranks[i-1]
		default:
			ranks[i] = uint32(i + 1)
		}
	}
	return ranks
}

package engine

// computeScore sums the points left in every hand except the winner's.
func (h *Hand) computeScore() int {
	total := 0
	for p, hand := range h.hands {
		if p == h.winner {
			continue
		}
		total += handPoints(hand)
	}
	return total
}

func handPoints(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}

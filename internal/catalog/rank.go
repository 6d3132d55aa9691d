package catalog

import (
	"strconv"
	"strings"
)

const (
	upperMoonPrefix = "upper moon"
	lowerMoonPrefix = "lower moon"

	// Unnumbered moons sort after every numbered moon of the same tier.
	upperMoonFallback = 8
	lowerMoonFallback = 16

	hashiraWeight = 30
	corpsWeight   = 40
	otherWeight   = 50
)

// RankWeight orders ranks strongest first: Upper Moon n is n, Lower Moon n
// is 10+n, then Hashira, Corps, and everything else.
func RankWeight(rank string) int {
	r := strings.TrimSpace(rank)
	lower := strings.ToLower(r)

	switch {
	case strings.HasPrefix(lower, upperMoonPrefix):
		return moonWeight(lower[len(upperMoonPrefix):], 0, upperMoonFallback)
	case strings.HasPrefix(lower, lowerMoonPrefix):
		return moonWeight(lower[len(lowerMoonPrefix):], 10, lowerMoonFallback)
	case r == "Hashira":
		return hashiraWeight
	case r == "Corps":
		return corpsWeight
	}
	return otherWeight
}

func moonWeight(suffix string, base, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(suffix))
	if err != nil {
		return fallback
	}
	return base + n
}

// PopularityScore ranks earlier dataset entries higher.
func PopularityScore(total, index int) int {
	return total - index
}

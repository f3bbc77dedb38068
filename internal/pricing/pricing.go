package pricing

import "main/internal/schema"

// Mid returns the floor integer midpoint of the top-of-book prices.
func Mid(bid, ask schema.Price) schema.Price {
	return (bid + ask) / 2
}

// WeightedSpread computes a liquidity-weighted half-spread estimate from the
// visible depth. For each level where both sides are present it weights the
// integer half-spread by the smaller of the two volumes. Returns 0 when no
// level has both sides.
func WeightedSpread(book schema.OrderBook) float64 {
	var weightedSum float64
	var totalVolume float64

	for i := 0; i < schema.TopLevelCount; i++ {
		ask, bid := book.AskPrices[i], book.BidPrices[i]
		if ask == 0 || bid == 0 {
			continue
		}
		halfSpread := float64((ask - bid) / 2)
		volume := book.AskVolumes[i]
		if book.BidVolumes[i] < volume {
			volume = book.BidVolumes[i]
		}
		weightedSum += halfSpread * float64(volume)
		totalVolume += float64(volume)
	}

	if totalVolume <= 0 {
		return 0
	}
	return weightedSum / totalVolume
}

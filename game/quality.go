package game

// Quality scores a set of settlement vertices (1 or 2, no duplicates) on this
// board as a weighted combination of three components: resource diversity and
// coverage, expected resource cards per turn, and the probability of earning
// at least one card per turn. An empty vertex set scores 0.
func (b *Board) Quality(vertices []int) float64 {
	return b.Weights.Resources*b.resourceScore(vertices) +
		b.Weights.ExpectedCards*b.expectedCards(vertices) +
		b.Weights.ProbAtLeastOne*b.probAtLeastOne(vertices)
}

// resourceScore weighs the diversity of touched resource types above raw
// tile coverage: 2 per distinct type plus 0.5 per non-desert (vertex, tile)
// incidence. A tile touched by both settlements counts twice toward coverage.
func (b *Board) resourceScore(vertices []int) float64 {
	types := make(map[Resource]struct{})
	incidences := 0
	for _, v := range vertices {
		for _, tileID := range vertexTiles[v] {
			tile := b.Tiles[tileID]
			if tile.Resource == Desert {
				continue
			}
			types[tile.Resource] = struct{}{}
			incidences++
		}
	}
	return float64(len(types))*2.0 + float64(incidences)*0.5
}

// expectedCards sums the roll probability of every distinct non-desert tile
// touched by the settlements, assuming a tile yields one card when its number
// is rolled. A tile shared by both settlements counts once.
func (b *Board) expectedCards(vertices []int) float64 {
	counted := make(map[int]struct{})
	expected := 0.0
	for _, v := range vertices {
		for _, tileID := range vertexTiles[v] {
			if _, ok := counted[tileID]; ok {
				continue
			}
			tile := b.Tiles[tileID]
			if tile.Resource == Desert {
				continue
			}
			expected += b.DiceProbability(tile.Number)
			counted[tileID] = struct{}{}
		}
	}
	return expected
}

// probAtLeastOne computes, by the complement rule, the exact probability that
// a single turn's roll yields at least one card: 1 minus the total
// probability of the roll values not covered by any touched tile. Overlapping
// tiles sharing a number do not change which rolls produce a card.
func (b *Board) probAtLeastOne(vertices []int) float64 {
	covered := make(map[int]struct{})
	for _, v := range vertices {
		for _, tileID := range vertexTiles[v] {
			tile := b.Tiles[tileID]
			if tile.Resource == Desert {
				continue
			}
			covered[tile.Number] = struct{}{}
		}
	}
	if len(covered) == 0 {
		return 0
	}

	probNone := 0.0
	for roll := 2; roll <= 12; roll++ {
		if _, ok := covered[roll]; !ok {
			probNone += b.diceProbs[roll]
		}
	}
	return 1.0 - probNone
}

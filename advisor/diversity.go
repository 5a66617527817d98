package advisor

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

const (
	singleCategoryDiversity = 0.3
	neutralDiversity        = 0.5
)

// Diversity 支出分散度：各类别占比的香农熵，按 log2(类别数) 归一化到 [0,1]
func Diversity(spending map[Category]decimal.Decimal) float64 {
	if len(spending) <= 1 {
		return singleCategoryDiversity
	}

	// 固定求和顺序，保证结果可复现
	keys := make([]Category, 0, len(spending))
	for k := range spending {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	total := decimal.Zero
	for _, k := range keys {
		total = total.Add(spending[k])
	}
	if total.IsZero() {
		return neutralDiversity
	}

	t := total.InexactFloat64()
	var entropy float64
	for _, k := range keys {
		p := spending[k].InexactFloat64() / t
		if p > 0 {
			entropy -= p * math.Log2(p)
		}
	}
	maxEntropy := math.Log2(float64(len(keys)))
	if maxEntropy == 0 {
		return neutralDiversity
	}
	return entropy / maxEntropy
}

package coinlist

import "github.com/abc123denny/cryptocurrency-app/internal/domain"

// mergeUnique — existing, затем incoming; дубликаты по ID отбрасываются, остаётся первое вхождение.
func mergeUnique(existing, incoming []domain.CoinSummary) []domain.CoinSummary {
	out := make([]domain.CoinSummary, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, cap(out))
	for _, list := range [][]domain.CoinSummary{existing, incoming} {
		for _, it := range list {
			if _, ok := seen[it.ID]; ok {
				continue
			}
			seen[it.ID] = struct{}{}
			out = append(out, it)
		}
	}
	return out
}

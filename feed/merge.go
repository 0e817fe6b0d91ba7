package feed

import "github.com/s0up4200/gifbox/giphy"

// MergeBySlug appends the items of page whose slug is not already in base.
// The result keeps base order followed by the new items in first-seen order.
// Items without a slug are keyed by id. base is not modified.
func MergeBySlug(base, page []giphy.Media) []giphy.Media {
	out := make([]giphy.Media, 0, len(base)+len(page))
	seen := make(map[string]struct{}, len(base)+len(page))

	for _, m := range base {
		out = append(out, m)
		seen[dedupKey(m)] = struct{}{}
	}

	for _, m := range page {
		key := dedupKey(m)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}

	return out
}

func dedupKey(m giphy.Media) string {
	if m.Slug != "" {
		return "s:" + m.Slug
	}
	return "i:" + m.ID
}

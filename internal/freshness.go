package internal

import (
	"math"
	"sort"
	"time"
)

// Tier is the derived lifecycle bucket of a seed.
type Tier string

const (
	TierFresh    Tier = "fresh"
	TierGrowing  Tier = "growing"
	TierOutdated Tier = "outdated"
	TierBoxed    Tier = "boxed"
)

const freshWindow = 24 * time.Hour

// maxAge stands in for records whose id carries no parseable timestamp.
const maxAge = time.Duration(math.MaxInt64)

// TierFor maps lifecycle status, age and TTL to a tier. Archived always
// boxes, regardless of age. The checks run in order: under 24h a seed is
// fresh even when its own TTL has already expired; the TTL signal is carried
// separately by Outdated.
func TierFor(status Status, age time.Duration, ttlHours int) Tier {
	switch {
	case status == StatusArchived:
		return TierBoxed
	case age < freshWindow:
		return TierFresh
	case age > time.Duration(ttlHours)*time.Hour:
		return TierOutdated
	default:
		return TierGrowing
	}
}

// Outdated reports whether age exceeds the seed's own TTL. Independent of
// the tier: a two-hour-old seed with a one-hour TTL is outdated yet fresh.
func Outdated(age time.Duration, ttlHours int) bool {
	return age > time.Duration(ttlHours)*time.Hour
}

func tierRank(t Tier) int {
	switch t {
	case TierFresh:
		return 0
	case TierGrowing:
		return 1
	case TierOutdated:
		return 2
	default:
		return 3
	}
}

// sortSeeds orders a listing: tier rank ascending, then newest first by the
// id-embedded timestamp within each tier.
func sortSeeds(seeds []*Seed) {
	sort.SliceStable(seeds, func(i, j int) bool {
		ri, rj := tierRank(seeds[i].FreshnessTier), tierRank(seeds[j].FreshnessTier)
		if ri != rj {
			return ri < rj
		}
		ti, _ := SeedIDTime(seeds[i].ID)
		tj, _ := SeedIDTime(seeds[j].ID)
		return ti.After(tj)
	})
}

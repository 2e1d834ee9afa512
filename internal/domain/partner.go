package domain

import "time"

// UnknownPartnerName is the denormalized name recorded when a referenced partner does not exist.
const UnknownPartnerName = "Unknown Partner"

// PartnerTier enumerates commercial tiers, ordered for display.
type PartnerTier string

const (
	TierPlatinum PartnerTier = "platinum"
	TierGold     PartnerTier = "gold"
	TierSilver   PartnerTier = "silver"
	TierBronze   PartnerTier = "bronze"
)

var tierRanks = map[PartnerTier]int{
	TierPlatinum: 0,
	TierGold:     1,
	TierSilver:   2,
	TierBronze:   3,
}

// Rank returns the display position of the tier, platinum first.
// Unknown tiers sort after bronze.
func (t PartnerTier) Rank() int {
	if rank, ok := tierRanks[t]; ok {
		return rank
	}
	return len(tierRanks)
}

// Valid reports whether t is a known tier.
func (t PartnerTier) Valid() bool {
	_, ok := tierRanks[t]
	return ok
}

// PartnerHealth is a coarse classification of relationship risk.
type PartnerHealth string

const (
	HealthHealthy   PartnerHealth = "healthy"
	HealthNeutral   PartnerHealth = "neutral"
	HealthAttention PartnerHealth = "attention"
	HealthCritical  PartnerHealth = "critical"
)

var healthRanks = map[PartnerHealth]int{
	HealthCritical:  0,
	HealthAttention: 1,
	HealthNeutral:   2,
	HealthHealthy:   3,
}

// Rank orders healths by severity: critical < attention < neutral < healthy.
// Unknown values rank as neutral.
func (h PartnerHealth) Rank() int {
	if rank, ok := healthRanks[h]; ok {
		return rank
	}
	return healthRanks[HealthNeutral]
}

// Valid reports whether h is a known health value.
func (h PartnerHealth) Valid() bool {
	_, ok := healthRanks[h]
	return ok
}

// Partner is a business account tracked by the desk. Version grows by one on
// every local mutation so replicas can discard out-of-order snapshots.
type Partner struct {
	ID             string
	Name           string
	Tier           PartnerTier
	Health         PartnerHealth
	LastActivity   time.Time
	OpenThreads    int
	Revenue        float64
	Segment        string
	AccountManager string
	Version        int64
}

// HealthHistoryEntry records a health value a partner held from RecordedAt on.
type HealthHistoryEntry struct {
	ID         string
	PartnerID  string
	Health     PartnerHealth
	Reason     string
	RecordedAt time.Time
}

package routing

import (
	"radiant/models"
)

// BaselineWeight applies to any staff member no active rule names.
const BaselineWeight = 50

// Candidate pairs a staff member with their resolved routing weight.
type Candidate struct {
	Staff  models.Staff `json:"staff"`
	Weight int          `json:"weight"`
}

// ruleSpecificity scores how specifically a rule matches the current
// service/location context. Strict ordering: service+location beats
// service-only beats location-only beats global. Returns -1 on no match.
func ruleSpecificity(rule models.RoutingRule, serviceSlug, locationKey string) int {
	if !rule.Active {
		return -1
	}
	if rule.ServiceSlug != "" && rule.ServiceSlug != serviceSlug {
		return -1
	}
	if rule.LocationKey != "" && rule.LocationKey != locationKey {
		return -1
	}
	score := 0
	if rule.ServiceSlug != "" {
		score += 2
	}
	if rule.LocationKey != "" {
		score++
	}
	return score
}

// ResolveWeights computes each staff member's weight: the weight of the
// single most-specific active rule naming them that matches the context,
// or the baseline when none does. Pure; no I/O.
func ResolveWeights(staff []models.Staff, rules []models.RoutingRule, serviceSlug, locationKey string) []Candidate {
	candidates := make([]Candidate, 0, len(staff))
	for _, s := range staff {
		weight := BaselineWeight
		best := -1
		for _, rule := range rules {
			if rule.StaffID != s.ID {
				continue
			}
			spec := ruleSpecificity(rule, serviceSlug, locationKey)
			if spec > best {
				best = spec
				weight = rule.Weight
			}
		}
		candidates = append(candidates, Candidate{Staff: s, Weight: weight})
	}
	return candidates
}

// Pick performs a weighted random draw over the candidates, optionally
// excluding one staff id first (the "show me someone else" re-roll).
// Zero remaining candidates yield nil; a single remaining candidate is
// returned unconditionally regardless of weight. rng must return a uniform
// value in [0, n).
func Pick(candidates []Candidate, excludeStaffID string, rng func(n int) int) *models.Staff {
	pool := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if excludeStaffID != "" && c.Staff.ID == excludeStaffID {
			continue
		}
		pool = append(pool, c)
	}
	if len(pool) == 0 {
		return nil
	}
	if len(pool) == 1 {
		return &pool[0].Staff
	}

	total := 0
	for _, c := range pool {
		total += c.Weight
	}
	if total <= 0 {
		return &pool[0].Staff
	}

	cursor := rng(total)
	for i := range pool {
		cursor -= pool[i].Weight
		if cursor < 0 {
			return &pool[i].Staff
		}
	}
	return &pool[len(pool)-1].Staff
}

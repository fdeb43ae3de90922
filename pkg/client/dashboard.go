package client

import (
	"context"
	"sort"
)

// DashboardStats is the derived dashboard view of the request list.
// There is no server-side aggregation endpoint; stats are recomputed
// from a full list fetch on every dashboard load.
type DashboardStats struct {
	TotalRequests  int             `json:"totalRequests"`
	StatusCounts   map[Status]int  `json:"statusCounts"`
	RecentRequests []RepairRequest `json:"recentRequests"`
}

// recentLimit caps the "most recent" list on the dashboard.
const recentLimit = 5

// AggregateStats derives dashboard stats from a request list. Pure:
// no state, no mutation of the input, deterministic. Every known
// status gets a count entry even when zero.
func AggregateStats(requests []RepairRequest) DashboardStats {
	stats := DashboardStats{
		TotalRequests: len(requests),
		StatusCounts:  make(map[Status]int, len(Statuses)),
	}
	for _, s := range Statuses {
		stats.StatusCounts[s] = 0
	}
	for _, r := range requests {
		stats.StatusCounts[r.Status]++
	}

	// Sort a copy, the caller's slice order is not ours to change.
	recent := make([]RepairRequest, len(requests))
	copy(recent, requests)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	stats.RecentRequests = recent
	return stats
}

// DashboardStats fetches the full request list and aggregates it.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	requests, err := c.ListRepairRequests(ctx)
	if err != nil {
		return nil, err
	}
	stats := AggregateStats(requests)
	return &stats, nil
}

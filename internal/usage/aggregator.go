// Package usage aggregates session usage per project over a trailing time
// window.
package usage

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/openclaw/dev-cockpit/internal/core/attribution"
	"github.com/openclaw/dev-cockpit/internal/core/constants"
	"github.com/openclaw/dev-cockpit/internal/core/pricing"
	"github.com/openclaw/dev-cockpit/internal/core/registry"
	"github.com/openclaw/dev-cockpit/internal/data/sessions"
)

// Params selects the aggregation window and an optional project.
type Params struct {
	Days    int    // 0 means all time
	Project string // "" means all projects
}

// ModelUsage is the per-model slice of a project's usage.
type ModelUsage struct {
	Tokens   int     `json:"tokens"`
	CostUSD  float64 `json:"costUSD"`
	Sessions int     `json:"sessions"`
}

// ProjectUsage is the aggregate for one project.
type ProjectUsage struct {
	Sessions         int                    `json:"sessions"`
	TotalTokens      int                    `json:"totalTokens"`
	InputTokens      int                    `json:"inputTokens"`
	OutputTokens     int                    `json:"outputTokens"`
	EstimatedCostUSD float64                `json:"estimatedCostUSD"`
	ActiveTimeHours  float64                `json:"activeTimeHours"`
	Models           map[string]*ModelUsage `json:"models"`
}

// Totals are the grand totals across all included projects.
type Totals struct {
	Sessions         int     `json:"sessions"`
	TotalTokens      int     `json:"totalTokens"`
	EstimatedCostUSD float64 `json:"estimatedCostUSD"`
}

// Result is the full usage report.
type Result struct {
	GeneratedAt   string                   `json:"generatedAt"`
	Days          int                      `json:"days,omitempty"`
	ProjectFilter string                   `json:"projectFilter,omitempty"`
	TotalProjects int                      `json:"totalProjects"`
	Projects      map[string]*ProjectUsage `json:"projects"`
	Totals        Totals                   `json:"totals"`
}

// SortedByCost returns project names ordered by estimated cost, highest
// first, then by name for a stable rendering order.
func (r *Result) SortedByCost() []string {
	names := make([]string, 0, len(r.Projects))
	for name := range r.Projects {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := r.Projects[names[i]], r.Projects[names[j]]
		if a.EstimatedCostUSD != b.EstimatedCostUSD {
			return a.EstimatedCostUSD > b.EstimatedCostUSD
		}
		return names[i] < names[j]
	})
	return names
}

// Aggregator computes usage reports. It holds no state between calls.
type Aggregator struct {
	pricing pricing.Provider
	now     func() time.Time
}

// New creates an Aggregator backed by the given pricing provider.
func New(provider pricing.Provider) *Aggregator {
	return &Aggregator{pricing: provider, now: time.Now}
}

// accumulator keeps full-precision sums until the final rounding pass.
type accumulator struct {
	sessions     int
	inputTokens  int
	outputTokens int
	cost         float64
	activeSecs   float64
	modelTokens  map[string]int
	modelCost    map[string]float64
	modelSess    map[string]int
}

// Aggregate attributes every session to a project and accumulates the
// in-window events. The window cutoff is evaluated once per call so that
// every session sees the same range.
func (a *Aggregator) Aggregate(ctx context.Context, params Params, sess []*sessions.Session, reg *registry.Registry) *Result {
	now := a.now()
	var cutoff int64
	if params.Days > 0 {
		cutoff = now.Add(-time.Duration(params.Days) * 24 * time.Hour).Unix()
	}

	accs := map[string]*accumulator{}
	for _, session := range sess {
		project := attribution.Attribute(session.Cwd, reg)

		inWindow := filterEvents(session.Events, cutoff)
		if len(inWindow) == 0 {
			continue
		}

		acc := accs[project]
		if acc == nil {
			acc = &accumulator{
				modelTokens: map[string]int{},
				modelCost:   map[string]float64{},
				modelSess:   map[string]int{},
			}
			accs[project] = acc
		}

		acc.sessions++
		sessionModels := map[string]bool{}
		for _, event := range inWindow {
			model := event.Model
			if model == "" {
				model = "unknown"
			}
			cost := event.CostUSD
			if !event.HasCost {
				p, err := a.pricing.GetPricing(ctx, model)
				if err != nil {
					p = pricing.DefaultPricing
				}
				cost = pricing.Estimate(event.InputTokens, event.OutputTokens, p)
			}

			acc.inputTokens += event.InputTokens
			acc.outputTokens += event.OutputTokens
			acc.cost += cost
			acc.modelTokens[model] += event.InputTokens + event.OutputTokens
			acc.modelCost[model] += cost
			sessionModels[model] = true
		}
		for model := range sessionModels {
			acc.modelSess[model]++
		}
		acc.activeSecs += activeSeconds(inWindow)
	}

	result := &Result{
		GeneratedAt:   now.UTC().Format(time.RFC3339),
		Days:          params.Days,
		ProjectFilter: params.Project,
		Projects:      map[string]*ProjectUsage{},
	}

	for name, acc := range accs {
		if params.Project != "" && name != params.Project {
			continue
		}
		result.Projects[name] = acc.finalize()
		result.Totals.Sessions += acc.sessions
		result.Totals.TotalTokens += acc.inputTokens + acc.outputTokens
		result.Totals.EstimatedCostUSD += acc.cost
	}
	result.TotalProjects = len(result.Projects)
	result.Totals.EstimatedCostUSD = round4(result.Totals.EstimatedCostUSD)
	return result
}

func (acc *accumulator) finalize() *ProjectUsage {
	usage := &ProjectUsage{
		Sessions:         acc.sessions,
		TotalTokens:      acc.inputTokens + acc.outputTokens,
		InputTokens:      acc.inputTokens,
		OutputTokens:     acc.outputTokens,
		EstimatedCostUSD: round4(acc.cost),
		ActiveTimeHours:  round2(acc.activeSecs / 3600),
		Models:           map[string]*ModelUsage{},
	}
	for model, tokens := range acc.modelTokens {
		usage.Models[model] = &ModelUsage{
			Tokens:   tokens,
			CostUSD:  round4(acc.modelCost[model]),
			Sessions: acc.modelSess[model],
		}
	}
	return usage
}

// filterEvents keeps events at or after cutoff. cutoff 0 keeps everything.
func filterEvents(events []sessions.Event, cutoff int64) []sessions.Event {
	if cutoff == 0 {
		return events
	}
	var kept []sessions.Event
	for _, event := range events {
		if event.Timestamp >= cutoff {
			kept = append(kept, event)
		}
	}
	return kept
}

// activeSeconds sums gaps between consecutive event timestamps, treating
// gaps above the idle threshold as inactivity. A single event contributes
// nothing.
func activeSeconds(events []sessions.Event) float64 {
	if len(events) < 2 {
		return 0
	}
	timestamps := make([]int64, len(events))
	for i, event := range events {
		timestamps[i] = event.Timestamp
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i] < timestamps[j] })

	var active float64
	for i := 1; i < len(timestamps); i++ {
		gap := timestamps[i] - timestamps[i-1]
		if gap <= constants.IdleThresholdSeconds {
			active += float64(gap)
		}
	}
	return active
}

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

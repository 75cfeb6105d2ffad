package renamer

import (
	"reelmatch/internal/config"
	"reelmatch/internal/matcher"
)

// PlanItem is one pending filesystem change.
type PlanItem struct {
	Source      string
	Target      string
	DisplayName string
}

// Plan is the full set of changes a pass would apply, in match order.
type Plan struct {
	Action string
	Items  []PlanItem
	Errors []error
}

// BuildPlan converts resolved matches into target paths. Matches whose
// target cannot be computed are collected as plan errors rather than
// silently dropped; unresolved matches never make it into the plan.
func BuildPlan(cfg *config.Config, matches []matcher.Match) Plan {
	plan := Plan{Action: cfg.Rename.Action}
	for _, m := range matches {
		if m.Candidate == nil {
			continue
		}
		target, err := TargetPath(cfg, m)
		if err != nil {
			plan.Errors = append(plan.Errors, err)
			continue
		}
		if target == m.File.Path {
			continue
		}
		plan.Items = append(plan.Items, PlanItem{
			Source:      m.File.Path,
			Target:      target,
			DisplayName: m.Candidate.DisplayName(),
		})
	}
	return plan
}

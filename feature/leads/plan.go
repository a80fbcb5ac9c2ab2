package leads

import (
	"context"
	"fmt"
	"strings"

	"intake-reconciler/core/match"
)

// ActionFlagSuccess marks a lead as having booked an appointment.
const ActionFlagSuccess = "flag_success"

// StatusSuccess is the status value of a flagged lead.
const StatusSuccess = "success"

// StatusAttribute is the primary record attribute holding the current status.
const StatusAttribute = "status"

// DefaultLimit caps the number of updates planned in one pass.
const DefaultLimit = 500

// Options controls planning and execution.
type Options struct {
	// DryRun plans without executing.
	DryRun bool
	// Confirmed must be set to execute.
	Confirmed bool
	// Limit caps the planned actions. Zero means DefaultLimit; negative means no cap.
	Limit int
	// AllowLowConfidence also flags leads matched only by a heuristic tier
	// (name and date proximity).
	AllowLowConfidence bool
}

func (o Options) limit() int {
	if o.Limit == 0 {
		return DefaultLimit
	}
	return o.Limit
}

// Action is one planned lead update.
type Action struct {
	Type       string     `json:"type"`
	LeadID     string     `json:"lead_id"`
	Tier       match.Tier `json:"tier"`
	MatchedIDs []string   `json:"matched_secondary_ids"`
	Reason     string     `json:"reason"`
}

// Summary counts the planning outcome.
type Summary struct {
	TotalLeads     int `json:"total_leads"`
	Matched        int `json:"matched"`
	AlreadyFlagged int `json:"already_flagged"`
	LowConfidence  int `json:"low_confidence"`
	Planned        int `json:"planned"`
	OverLimit      int `json:"over_limit"`
	// Limit is the cap that was applied; negative means none.
	Limit int `json:"limit"`
}

// Plan is the set of updates derived from a report.
type Plan struct {
	Actions []Action `json:"actions"`
	Summary Summary  `json:"summary"`
}

// Updater applies lead status updates.
type Updater interface {
	FlagSuccess(ctx context.Context, action Action) error
}

// BatchUpdater applies many updates at once.
type BatchUpdater interface {
	FlagSuccessBatch(ctx context.Context, actions []Action) error
}

// BuildPlan plans a flag_success action for every matched lead that is not
// flagged yet, in report order, up to the limit. Low-confidence matches are
// counted but not planned unless opts.AllowLowConfidence is set.
func BuildPlan(report *match.Report, opts Options) *Plan {
	plan := &Plan{Actions: []Action{}}
	plan.Summary.TotalLeads = len(report.Results)
	limit := opts.limit()
	plan.Summary.Limit = limit

	for _, res := range report.Results {
		if !res.Matched {
			continue
		}
		plan.Summary.Matched++

		if res.Tier.LowConfidence() && !opts.AllowLowConfidence {
			plan.Summary.LowConfidence++
			continue
		}

		if strings.EqualFold(strings.TrimSpace(res.Attributes[StatusAttribute]), StatusSuccess) {
			plan.Summary.AlreadyFlagged++
			continue
		}

		if limit >= 0 && len(plan.Actions) >= limit {
			plan.Summary.OverLimit++
			continue
		}

		plan.Actions = append(plan.Actions, Action{
			Type:       ActionFlagSuccess,
			LeadID:     res.PrimaryID,
			Tier:       res.Tier,
			MatchedIDs: res.MatchedIDs(),
			Reason:     fmt.Sprintf("matched by %s", res.Tier),
		})
	}
	plan.Summary.Planned = len(plan.Actions)
	return plan
}

// Apply executes the plan. Nothing runs unless opts.Confirmed is set and
// opts.DryRun is not. Returns the number of actions executed.
func Apply(ctx context.Context, u Updater, plan *Plan, opts Options) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}
	if len(plan.Actions) == 0 {
		return 0, nil
	}

	if batch, ok := u.(BatchUpdater); ok {
		if err := batch.FlagSuccessBatch(ctx, plan.Actions); err != nil {
			return 0, fmt.Errorf("failed to batch update leads: %w", err)
		}
		return len(plan.Actions), nil
	}

	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return executed, err
		}
		if err := u.FlagSuccess(ctx, action); err != nil {
			return executed, fmt.Errorf("failed to update lead %s: %w", action.LeadID, err)
		}
		executed++
	}
	return executed, nil
}

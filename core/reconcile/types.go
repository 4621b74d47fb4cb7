package reconcile

import "time"

// Options controls how a run treats the destination.
type Options struct {
	// Force deletes every destination mapping rule before copying the source rules.
	Force bool

	// RulesOnly restricts a run to mapping rules.
	RulesOnly bool

	// DryRun computes and records every action without issuing a write.
	DryRun bool
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionUpdateService overwrites the whitelisted service settings.
	ActionUpdateService ActionType = "update_service"
	// ActionUpdateProxy overwrites the proxy configuration.
	ActionUpdateProxy ActionType = "update_proxy"
	// ActionCreateMethod creates a method under the destination hits metric.
	ActionCreateMethod ActionType = "create_method"
	// ActionCreateMetric creates a metric.
	ActionCreateMetric ActionType = "create_metric"
	// ActionCreatePlan creates an application plan.
	ActionCreatePlan ActionType = "create_application_plan"
	// ActionSkipPlan marks a custom plan that is never copied.
	ActionSkipPlan ActionType = "skip_application_plan"
	// ActionCreateLimit creates a limit on a destination plan.
	ActionCreateLimit ActionType = "create_limit"
	// ActionDeleteMappingRule removes a destination mapping rule.
	ActionDeleteMappingRule ActionType = "delete_mapping_rule"
	// ActionCreateMappingRule creates a mapping rule.
	ActionCreateMappingRule ActionType = "create_mapping_rule"
)

// Action represents one mutation, applied or planned.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key identifies the record the action concerns.
	Key string `json:"key"`

	// Reason explains an action that was planned but could not be resolved yet.
	Reason string `json:"reason,omitempty"`

	// Applied is false for dry runs and skips.
	Applied bool `json:"applied"`
}

// Summary provides aggregate counts for a run.
type Summary struct {
	ServiceUpdated bool `json:"service_updated"`
	ProxyUpdated   bool `json:"proxy_updated"`

	MissingMethods int `json:"missing_methods"`
	CreatedMethods int `json:"created_methods"`

	MissingMetrics int `json:"missing_metrics"`
	CreatedMetrics int `json:"created_metrics"`

	MissingPlans int `json:"missing_plans"`
	CreatedPlans int `json:"created_plans"`
	SkippedPlans int `json:"skipped_plans"`

	MissingLimits int `json:"missing_limits"`
	CreatedLimits int `json:"created_limits"`

	DeletedMappingRules int `json:"deleted_mapping_rules"`
	MissingMappingRules int `json:"missing_mapping_rules"`
	CreatedMappingRules int `json:"created_mapping_rules"`
}

// Writes returns the number of create and delete calls issued.
func (s Summary) Writes() int {
	return s.CreatedMethods + s.CreatedMetrics + s.CreatedPlans + s.CreatedLimits +
		s.DeletedMappingRules + s.CreatedMappingRules
}

// Report describes one run. It is filled progressively, so a failed run still
// reports everything that happened before the failure.
type Report struct {
	RunID           string    `json:"run_id"`
	SourceServiceID int64     `json:"source_service_id"`
	TargetServiceID int64     `json:"target_service_id"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	DryRun          bool      `json:"dry_run"`
	Force           bool      `json:"force"`
	RulesOnly       bool      `json:"rules_only"`
	Summary         Summary   `json:"summary"`
	Actions         []Action  `json:"actions"`

	// Error holds the message of the failure that ended the run, if any.
	Error string `json:"error,omitempty"`
}

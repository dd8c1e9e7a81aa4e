package provision

// PlanStep describes one step without running it
type PlanStep struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Actions     []string `json:"actions" yaml:"actions"`
}

// Plan lists the steps a pipeline would run
type Plan struct {
	DotfilesRoot string     `json:"dotfiles_root" yaml:"dotfiles_root"`
	ConfigSource string     `json:"config_source,omitempty" yaml:"config_source,omitempty"`
	DryRun       bool       `json:"dry_run" yaml:"dry_run"`
	Steps        []PlanStep `json:"steps" yaml:"steps"`
}

// Plan describes the pipeline's steps in order
func (p *Pipeline) Plan() *Plan {
	plan := &Plan{DryRun: p.dryRun, Steps: make([]PlanStep, 0, len(p.steps))}
	for _, s := range p.steps {
		plan.Steps = append(plan.Steps, PlanStep{
			Name:        s.Name,
			Description: s.Description,
			Actions:     s.Plan,
		})
	}
	return plan
}

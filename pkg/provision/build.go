package provision

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/config"
	"github.com/arthur-debert/dotsetup/pkg/copier"
	"github.com/arthur-debert/dotsetup/pkg/packages"
	"github.com/arthur-debert/dotsetup/pkg/paths"
	"github.com/arthur-debert/dotsetup/pkg/repos"
	"github.com/arthur-debert/dotsetup/pkg/runner"
	"github.com/arthur-debert/dotsetup/pkg/types"
	"github.com/rs/zerolog"
)

// Step groups, in execution order
const (
	StepKernel  = "kernel"
	StepUpdate  = "update"
	StepInstall = "install"
	StepClone   = "clone"
	StepCopy    = "copy"
)

// Deps are the collaborators the standard steps run against
type Deps struct {
	Runner runner.Runner
	FS     types.FS
	Paths  paths.Paths
	Logger zerolog.Logger
	DryRun bool
}

// Build assembles the standard pipeline from cfg
func Build(cfg *config.Config, deps Deps) *Pipeline {
	componentLogger := func(name string) zerolog.Logger {
		return deps.Logger.With().Str("component", name).Logger()
	}

	manager := packages.NewManager(deps.Runner, deps.FS, cfg, componentLogger("packages"))
	cloner := repos.NewCloner(deps.Runner, deps.FS, cfg.Git, componentLogger("repos"))
	cp := copier.New(deps.FS, componentLogger("copier"))

	steps := []Step{
		kernelStep(manager),
		updateStep(manager),
		installStep(manager, deps.Paths.Resolve(cfg.Requirements.File)),
	}
	for _, repo := range cfg.Repositories {
		steps = append(steps, cloneStep(cloner, resolveRepository(repo, deps.Paths)))
	}
	for _, c := range cfg.Copies {
		steps = append(steps, copyStep(cp, c.Name, deps.Paths.Resolve(c.Source), deps.Paths.Resolve(c.Destination)))
	}

	return NewPipeline(componentLogger("provision"), steps...).SetDryRun(deps.DryRun)
}

func resolveRepository(repo config.Repository, p paths.Paths) config.Repository {
	repo.Base = p.Resolve(repo.Base)
	return repo
}

func kernelStep(m *packages.Manager) Step {
	return Step{
		Name:        StepKernel,
		Description: "Check for kernel updates",
		Plan:        []string{m.ListCommand().String()},
		Run: func(ctx context.Context) (Outcome, error) {
			matches, err := m.CheckKernelUpdates(ctx)
			if err != nil {
				return Outcome{}, err
			}
			if len(matches) == 0 {
				return Done("no kernel updates"), nil
			}
			return Done(fmt.Sprintf("%d kernel update(s) available", len(matches))), nil
		},
	}
}

func updateStep(m *packages.Manager) Step {
	var plan []string
	for _, c := range m.UpdateCommands() {
		plan = append(plan, c.String())
	}
	return Step{
		Name:        StepUpdate,
		Description: "Update system packages",
		Plan:        plan,
		Run: func(ctx context.Context) (Outcome, error) {
			if err := m.UpdateSystem(ctx); err != nil {
				return Outcome{}, err
			}
			return Done(), nil
		},
	}
}

func installStep(m *packages.Manager, path string) Step {
	return Step{
		Name:        StepInstall,
		Description: "Install packages from " + path,
		Plan:        []string{m.InstallCommand([]string{"<packages from " + path + ">"}).String()},
		Run: func(ctx context.Context) (Outcome, error) {
			names, err := m.InstallRequirements(ctx, path)
			if err != nil {
				return Outcome{}, err
			}
			if len(names) == 0 {
				return Skip("no packages listed"), nil
			}
			return Done(fmt.Sprintf("%d package(s): %s", len(names), strings.Join(names, " "))), nil
		},
	}
}

func cloneStep(c *repos.Cloner, repo config.Repository) Step {
	target := repos.Target(repo)
	return Step{
		Name:        StepClone + ":" + repo.Name,
		Description: fmt.Sprintf("Clone %s into %s", repo.URL, target),
		Plan:        []string{fmt.Sprintf("git clone %s %s (skipped if it exists)", repo.URL, target)},
		Run: func(ctx context.Context) (Outcome, error) {
			outcome, err := c.Clone(ctx, repo)
			if err != nil {
				return Outcome{}, err
			}
			if outcome == repos.Skipped {
				return Skip("already installed at " + target), nil
			}
			return Done("cloned into " + target), nil
		},
	}
}

func copyStep(cp *copier.Copier, name, src, dst string) Step {
	return Step{
		Name:        StepCopy + ":" + name,
		Description: fmt.Sprintf("Copy %s into %s", src, dst),
		Plan: []string{
			fmt.Sprintf("copy %s -> %s", src, dst),
			"existing directories are skipped, existing files are overwritten",
		},
		Run: func(_ context.Context) (Outcome, error) {
			stats, err := cp.Copy(src, dst)
			if err != nil {
				return Outcome{}, err
			}
			return Done(fmt.Sprintf("%d file(s), %d dir(s) copied, %d dir(s) skipped",
				stats.FilesCopied, stats.DirsCopied, stats.DirsSkipped)), nil
		},
	}
}

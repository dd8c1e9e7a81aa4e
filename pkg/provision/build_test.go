package provision

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsetup/pkg/config"
	"github.com/arthur-debert/dotsetup/pkg/filesystem"
	"github.com/arthur-debert/dotsetup/pkg/paths"
	"github.com/arthur-debert/dotsetup/pkg/runner"
	"github.com/arthur-debert/dotsetup/pkg/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	home string
	root string
	p    paths.Paths
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	home := t.TempDir()
	root := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	p, err := paths.New(root)
	require.NoError(t, err)
	return fixture{home: home, root: root, p: p}
}

func TestBuild_StepOrder(t *testing.T) {
	f := newFixture(t)
	p := Build(config.Default(), Deps{
		Runner: testutil.NewFakeRunner(),
		FS:     filesystem.NewOS(),
		Paths:  f.p,
		Logger: zerolog.Nop(),
	})

	assert.Equal(t, []string{
		"kernel",
		"update",
		"install",
		"clone:wallpapers",
		"clone:shell-theme",
		"copy:config",
		"copy:fonts",
		"copy:themes",
	}, p.Names())

	for _, s := range p.Steps() {
		assert.NotEmpty(t, s.Description, s.Name)
		assert.NotEmpty(t, s.Plan, s.Name)
	}
}

func TestBuild_FullRun(t *testing.T) {
	f := newFixture(t)
	testutil.WriteTree(t, f.root, map[string]string{
		"requirements.txt":    "git\n# comment\n\nvim\n",
		"config/a.conf":       "source",
		"config/sub/new.conf": "source",
		"fonts/mono.ttf":      "font",
		"themes/dark/gtk.css": "css",
	})
	testutil.WriteTree(t, f.home, map[string]string{
		".config/sub/old.conf":    "mine",
		".oh-my-zsh/oh-my-zsh.sh": "installed",
	})

	fake := testutil.NewFakeRunner().On("apt list", testutil.Response{
		Stdout: "linux-image-6.1.0-18-amd64/stable 6.1.76-1 amd64\n",
	})
	report := Build(config.Default(), Deps{
		Runner: fake,
		FS:     filesystem.NewOS(),
		Paths:  f.p,
		Logger: zerolog.Nop(),
	}).Run(context.Background())

	assert.False(t, report.Failed(), "%+v", report.Results)
	assert.Equal(t, []string{
		"apt list --upgradable",
		"apt update",
		"apt upgrade -y",
		"apt autoremove -y",
		"apt autoclean",
		"apt install -y git vim",
		"git clone https://github.com/dharmx/walls.git " + filepath.Join(f.home, "Pictures", "wallpapers"),
	}, fake.Lines())

	kernel, _ := report.Result("kernel")
	assert.Equal(t, []string{"1 kernel update(s) available"}, kernel.Notes)

	theme, _ := report.Result("clone:shell-theme")
	assert.Equal(t, StatusSkipped, theme.Status)

	home := testutil.ReadTree(t, f.home)
	assert.Equal(t, "source", home[".config/a.conf"])
	assert.Equal(t, "mine", home[".config/sub/old.conf"])
	assert.NotContains(t, home, ".config/sub/new.conf")
	assert.Equal(t, "font", home[".local/share/fonts/mono.ttf"])
	assert.Equal(t, "css", home[".themes/dark/gtk.css"])
}

func TestBuild_FailuresDoNotStopLaterSteps(t *testing.T) {
	f := newFixture(t)
	// No requirements file and no copy sources in the root
	fake := testutil.NewFakeRunner().
		On("apt list", testutil.Response{ExitCode: 100}).
		On("apt update", testutil.Response{ExitCode: 100}).
		On("git clone", testutil.Response{ExitCode: 128})

	report := Build(config.Default(), Deps{
		Runner: fake,
		FS:     filesystem.NewOS(),
		Paths:  f.p,
		Logger: zerolog.Nop(),
	}).Run(context.Background())

	codes := map[string]string{}
	for _, r := range report.Results {
		codes[r.Step] = r.Code
	}
	assert.Equal(t, map[string]string{
		"kernel":            "COMMAND",
		"update":            "COMMAND",
		"install":           "NOT_FOUND",
		"clone:wallpapers":  "CLONE",
		"clone:shell-theme": "CLONE",
		"copy:config":       "NOT_FOUND",
		"copy:fonts":        "NOT_FOUND",
		"copy:themes":       "NOT_FOUND",
	}, codes)
	assert.Equal(t, 8, report.Count(StatusFailed))
}

func TestBuild_DryRunChangesNothing(t *testing.T) {
	f := newFixture(t)
	testutil.WriteTree(t, f.root, map[string]string{
		"requirements.txt": "git\n",
		"config/a.conf":    "source",
		"fonts/f.ttf":      "font",
		"themes/t/x":       "x",
	})
	before := testutil.ReadTree(t, f.home)

	dry := runner.NewDryRunRunner(zerolog.Nop())
	report := Build(config.Default(), Deps{
		Runner: dry,
		FS:     filesystem.NewDryRun(filesystem.NewOS(), zerolog.Nop()),
		Paths:  f.p,
		Logger: zerolog.Nop(),
		DryRun: true,
	}).Run(context.Background())

	assert.True(t, report.DryRun)
	assert.False(t, report.Failed(), "%+v", report.Results)
	assert.Equal(t, before, testutil.ReadTree(t, f.home))
	assert.Len(t, dry.Commands(), 8)
}

func TestBuild_RequirementsFileFromConfig(t *testing.T) {
	f := newFixture(t)
	testutil.WriteTree(t, f.root, map[string]string{"extra.txt": "htop\n"})
	fake := testutil.NewFakeRunner()

	cfg := config.Default()
	cfg.Requirements.File = "extra.txt"
	p, err := Build(cfg, Deps{
		Runner: fake,
		FS:     filesystem.NewOS(),
		Paths:  f.p,
		Logger: zerolog.Nop(),
	}).Only(StepInstall)
	require.NoError(t, err)

	report := p.Run(context.Background())
	assert.False(t, report.Failed())
	assert.Equal(t, []string{"apt install -y htop"}, fake.Lines())
}

func TestPipeline_Plan(t *testing.T) {
	f := newFixture(t)
	p, err := Build(config.Default(), Deps{
		Runner: testutil.NewFakeRunner(),
		FS:     filesystem.NewOS(),
		Paths:  f.p,
		Logger: zerolog.Nop(),
		DryRun: true,
	}).Only(StepUpdate, "clone:wallpapers")
	require.NoError(t, err)

	plan := p.Plan()
	assert.True(t, plan.DryRun)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, "update", plan.Steps[0].Name)
	assert.Equal(t, []string{
		"sudo apt update",
		"sudo apt upgrade -y",
		"sudo apt autoremove -y",
		"sudo apt autoclean",
	}, plan.Steps[0].Actions)
	assert.Contains(t, plan.Steps[1].Actions[0], "https://github.com/dharmx/walls.git")
}

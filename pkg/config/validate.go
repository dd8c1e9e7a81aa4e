package config

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/errors"
)

// Validate checks the decoded configuration for values no step can run with
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.PackageManager.Command) == "" {
		problems = append(problems, "package_manager.command is empty")
	}
	if c.PackageManager.Sudo && strings.TrimSpace(c.PackageManager.SudoCommand) == "" {
		problems = append(problems, "package_manager.sudo_command is empty while sudo is enabled")
	}
	if c.PackageManager.Timeout < 0 || c.Git.Timeout < 0 {
		problems = append(problems, "timeouts must not be negative")
	}
	if strings.TrimSpace(c.Requirements.CommentPrefix) == "" {
		problems = append(problems, "requirements.comment_prefix is empty")
	}
	if strings.TrimSpace(c.Git.Command) == "" {
		problems = append(problems, "git.command is empty")
	}
	if c.Git.Depth < 0 {
		problems = append(problems, "git.depth must not be negative")
	}

	seen := make(map[string]bool)
	for i, r := range c.Repositories {
		switch {
		case r.Name == "":
			problems = append(problems, "repositories["+strconv.Itoa(i)+"].name is empty")
		case seen["clone:"+r.Name]:
			problems = append(problems, "duplicate repository name "+r.Name)
		}
		seen["clone:"+r.Name] = true
		if r.URL == "" || r.Base == "" || r.Dir == "" {
			problems = append(problems, "repository "+r.Name+" needs url, base and dir")
		}
	}
	for i, cp := range c.Copies {
		switch {
		case cp.Name == "":
			problems = append(problems, "copies["+strconv.Itoa(i)+"].name is empty")
		case seen["copy:"+cp.Name]:
			problems = append(problems, "duplicate copy name "+cp.Name)
		}
		seen["copy:"+cp.Name] = true
		if cp.Source == "" || cp.Destination == "" {
			problems = append(problems, "copy "+cp.Name+" needs source and destination")
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New(errors.ErrConfigValid, "invalid configuration: "+strings.Join(problems, "; ")).
		WithDetail("problems", problems)
}

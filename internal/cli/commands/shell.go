package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"PassKeeper/internal/cli/bootstrap"
	"PassKeeper/internal/config"
	"PassKeeper/internal/service"
)

type shellCmd struct{}

func (shellCmd) Name() string { return "shell" }
func (shellCmd) Description() string {
	return "Interactive session: unlock once, auto-lock after inactivity"
}
func (shellCmd) Usage() string { return "shell" }

func (shellCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	s, done, err := bootstrap.OpenSession(ctx, cfg, Logger)
	if err != nil {
		return err
	}
	defer done()
	if err := unlock(ctx, s, cfg); err != nil {
		return err
	}

	idle := service.NewIdleLocker(cfg.IdleTimeout, s.Logout)
	defer idle.Stop()
	idle.Touch()

	fmt.Fprintln(Out, "Vault unlocked. Type `help` for commands, `lock` to lock, `exit` to quit.")
	wasUnlocked := true
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := readLine("pk> ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(Out)
			return nil
		}
		if err != nil {
			return err
		}
		args, err := splitArgs(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(Out, "unterminated quote")
			continue
		}
		if len(args) == 0 {
			continue
		}

		if wasUnlocked && s.State() == service.StateLocked {
			fmt.Fprintln(Out, "Vault was locked after inactivity.")
		}

		name := strings.ToLower(args[0])
		switch name {
		case "exit", "quit":
			return nil
		case "lock":
			s.Logout()
			idle.Stop()
			fmt.Fprintln(Out, "Vault locked.")
			wasUnlocked = false
			continue
		case "help":
			fmt.Fprint(Out, shellUsage())
			continue
		}
		shellExec(ctx, cfg, s, idle, name, args[1:])
		wasUnlocked = s.State() == service.StateUnlocked
	}
}

func shellExec(ctx context.Context, cfg *config.Config, s *service.Session, idle *service.IdleLocker, name string, args []string) {
	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n", name)
		return
	}
	vc, ok := c.(vaultCmd)
	if !ok {
		switch name {
		case "init", "status", "shell":
			fmt.Fprintf(Out, "%s is not available inside the shell\n", name)
			return
		}
		reportErr(name, c, c.Run(ctx, cfg, args))
		return
	}

	act, err := vc.bind(args)
	if err != nil {
		reportErr(name, c, err)
		return
	}
	if err := unlock(ctx, s, cfg); err != nil {
		reportErr(name, c, err)
		return
	}
	idle.Touch()
	reportErr(name, c, act(ctx, s))
}

func reportErr(name string, c Command, err error) {
	switch {
	case err == nil:
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
	default:
		fmt.Fprintf(Out, "%s error: %v\n", name, err)
	}
}

func shellUsage() string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, c := range List() {
		switch c.Name() {
		case "init", "status", "shell":
			continue
		}
		fmt.Fprintf(&b, "  %-44s %s\n", c.Usage(), c.Description())
	}
	b.WriteString("  lock                                         Lock the vault now\n")
	b.WriteString("  exit                                         Leave the shell\n")
	return b.String()
}

func init() { RegisterCmd(shellCmd{}) }

package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"PassKeeper/internal/common"
	"PassKeeper/internal/config"
)

// Коды завершения pkcli.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitUsage       = 2
	ExitDenied      = 3 // неверный мастер-пароль или хранилище заблокировано
	ExitNotSetUp    = 4
	ExitInterrupted = 130
)

// Dispatch is the single entry point to execute CLI commands.
// It prints help and usage messages and returns a process exit code.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	// If user passed global --help after flags parsing, show global usage
	for _, a := range os.Args[1:] {
		if a == "--help" || a == "-h" {
			fmt.Fprint(Out, FormatGlobalUsage())
			return ExitOK
		}
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	name := strings.ToLower(args[0])
	if name == "help" { // pkcli help [command]
		if len(args) == 1 {
			fmt.Fprint(Out, FormatGlobalUsage())
			return ExitOK
		}
		if c, ok := Get(args[1]); ok {
			fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
			return ExitOK
		}
		fmt.Fprintf(Out, "Unknown command: %s\n\n", args[1])
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	c, ok := Get(name)
	if !ok {
		Logger.Debugw("unknown command", "command", name)
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	start := time.Now()
	err := c.Run(ctx, cfg, args[1:])
	code := exitCode(err)
	switch code {
	case ExitOK:
		Logger.Debugw("command finished", "command", name, "duration", time.Since(start))
	case ExitUsage:
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
	case ExitDenied:
		// Введённый пароль в лог не попадает.
		Logger.Warnw("vault access denied", "command", name)
		fmt.Fprintf(Out, "%s error: %v\n", name, err)
		if errors.Is(err, common.ErrNotAuthenticated) {
			fmt.Fprintln(Out, "Unlock the vault with the master password and try again.")
		}
	case ExitNotSetUp:
		fmt.Fprintf(Out, "%s error: %v\n", name, err)
	case ExitInterrupted:
		fmt.Fprintf(Out, "%s interrupted\n", name)
	default:
		Logger.Errorw("command failed", "command", name, "error", err)
		fmt.Fprintf(Out, "%s error: %v\n", name, err)
	}
	return code
}

// exitCode сопоставляет ошибку команды с кодом завершения.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, common.ErrInvalidCredentials), errors.Is(err, common.ErrNotAuthenticated):
		return ExitDenied
	case errors.Is(err, common.ErrNotSetUp):
		return ExitNotSetUp
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return ExitError
	}
}

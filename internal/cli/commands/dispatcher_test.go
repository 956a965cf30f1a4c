package commands

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"PassKeeper/internal/common"
	"PassKeeper/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeCmd позволяет управлять возвратом ошибок из Run
type fakeCmd struct {
	name, usage, desc string
	run               func(ctx context.Context, cfg *config.Config, args []string) error
}

func (f fakeCmd) Name() string        { return f.name }
func (f fakeCmd) Description() string { return f.desc }
func (f fakeCmd) Usage() string       { return f.usage }
func (f fakeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return f.run(ctx, cfg, args)
}

func TestDispatcher_HelpAndUnknown(t *testing.T) {
	out := withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{}) })
	if !strings.Contains(out, "PassKeeper CLI") {
		t.Fatalf("global help expected")
	}
	for _, name := range []string{"init", "status", "add", "list", "get", "edit", "delete", "export", "import", "generate", "strength", "shell"} {
		if !strings.Contains(out, "  "+name) {
			t.Fatalf("command %q missing from help", name)
		}
	}

	out = withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"help"}) })
	if !strings.Contains(out, "Usage:") {
		t.Fatalf("usage expected")
	}

	var code int
	out = withStdoutCapture(t, func() { code = Dispatch(context.Background(), &config.Config{}, []string{"help", "get"}) })
	if code != 0 || !strings.Contains(out, "Usage: get [-show] <id|title>") {
		t.Fatalf("expected usage of get, got %d %q", code, out)
	}

	out = withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"help", "nope"}) })
	if !strings.Contains(out, "Unknown command") {
		t.Fatalf("unknown command message expected")
	}

	withStdoutCapture(t, func() { code = Dispatch(context.Background(), &config.Config{}, []string{"no-such"}) })
	if code != 2 {
		t.Fatalf("expected 2 for unknown command, got %d", code)
	}
}

func TestDispatcher_RunPaths(t *testing.T) {
	cmdOK := fakeCmd{name: "x", usage: "x", run: func(_ context.Context, _ *config.Config, _ []string) error { return nil }}
	RegisterCmd(cmdOK)
	t.Cleanup(func() { delete(registry, "x") })
	if code := Dispatch(context.Background(), &config.Config{}, []string{"X"}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	cmdUsage := fakeCmd{name: "u", usage: "u <arg>", run: func(_ context.Context, _ *config.Config, _ []string) error { return ErrUsage }}
	RegisterCmd(cmdUsage)
	t.Cleanup(func() { delete(registry, "u") })
	var code int
	out := withStdoutCapture(t, func() { code = Dispatch(context.Background(), &config.Config{}, []string{"u"}) })
	if code != 2 || !strings.Contains(out, "Usage: u <arg>") {
		t.Fatalf("usage text expected, got %d %q", code, out)
	}

	cmdErr := fakeCmd{name: "e", usage: "e", run: func(_ context.Context, _ *config.Config, _ []string) error { return fmt.Errorf("boom") }}
	RegisterCmd(cmdErr)
	t.Cleanup(func() { delete(registry, "e") })
	out = withStdoutCapture(t, func() { code = Dispatch(context.Background(), &config.Config{}, []string{"e"}) })
	if code != 1 || !strings.Contains(out, "e error: boom") {
		t.Fatalf("error line expected, got: %s", out)
	}
}

func TestDispatcher_VaultErrorCodes(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	oldLogger := Logger
	Logger = zap.New(core).Sugar()
	t.Cleanup(func() { Logger = oldLogger })

	cases := []struct {
		name    string
		err     error
		code    int
		out     string
		logMsg  string
		logWarn bool
	}{
		{"wrongpw", fmt.Errorf("unlock: %w", common.ErrInvalidCredentials), ExitDenied, "wrongpw error: unlock: invalid master password", "vault access denied", true},
		{"locked", common.ErrNotAuthenticated, ExitDenied, "Unlock the vault", "vault access denied", true},
		{"fresh", fmt.Errorf("%w: run `pkcli init` first", common.ErrNotSetUp), ExitNotSetUp, "run `pkcli init` first", "", false},
		{"cancel", fmt.Errorf("read: %w", context.Canceled), ExitInterrupted, "cancel interrupted", "", false},
		{"broken", fmt.Errorf("disk full"), ExitError, "broken error: disk full", "command failed", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.err
			RegisterCmd(fakeCmd{name: tc.name, usage: tc.name, run: func(_ context.Context, _ *config.Config, _ []string) error { return err }})
			t.Cleanup(func() { delete(registry, tc.name) })

			before := logs.Len()
			var code int
			out := withStdoutCapture(t, func() { code = Dispatch(context.Background(), &config.Config{}, []string{tc.name}) })
			assert.Equal(t, tc.code, code)
			assert.Contains(t, out, tc.out)

			if tc.logMsg == "" {
				return
			}
			entries := logs.All()[before:]
			if assert.Len(t, entries, 1) {
				assert.Equal(t, tc.logMsg, entries[0].Message)
				assert.Equal(t, tc.name, entries[0].ContextMap()["command"])
				if tc.logWarn {
					assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
				}
			}
		})
	}
}

func TestDispatcher_SuccessIsLoggedAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	oldLogger := Logger
	Logger = zap.New(core).Sugar()
	t.Cleanup(func() { Logger = oldLogger })

	RegisterCmd(fakeCmd{name: "okcmd", usage: "okcmd", run: func(_ context.Context, _ *config.Config, _ []string) error { return nil }})
	t.Cleanup(func() { delete(registry, "okcmd") })

	code := Dispatch(context.Background(), &config.Config{}, []string{"okcmd"})
	assert.Equal(t, ExitOK, code)
	finished := logs.FilterMessage("command finished").All()
	if assert.Len(t, finished, 1) {
		assert.Equal(t, "okcmd", finished[0].ContextMap()["command"])
	}
}

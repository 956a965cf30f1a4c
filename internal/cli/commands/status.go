package commands

import (
	"context"
	"fmt"

	"PassKeeper/internal/cli/bootstrap"
	"PassKeeper/internal/config"
	"PassKeeper/internal/service"
)

type statusCmd struct{}

func (statusCmd) Name() string { return "status" }
func (statusCmd) Description() string {
	return "Show whether the vault is set up and where it is stored"
}
func (statusCmd) Usage() string { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	s, done, err := bootstrap.OpenSession(ctx, cfg, Logger)
	if err != nil {
		return err
	}
	defer done()

	setUp := "no (run `pkcli init`)"
	if s.State() != service.StateUninitialized {
		setUp = "yes"
	}
	fmt.Fprintf(Out, "Storage: %s\n", cfg.StorageDriver)
	if cfg.StorageDriver != config.DriverPostgres {
		fmt.Fprintf(Out, "Path:    %s\n", cfg.StoragePath())
	}
	fmt.Fprintf(Out, "Set up:  %s\n", setUp)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }

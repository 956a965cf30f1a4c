package commands

import (
	"context"
	"errors"
	"fmt"

	"PassKeeper/internal/cli/bootstrap"
	"PassKeeper/internal/config"
	"PassKeeper/internal/service"
)

type initCmd struct{}

func (initCmd) Name() string        { return "init" }
func (initCmd) Description() string { return "Create the vault and set the master password" }
func (initCmd) Usage() string       { return "init" }

func (initCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	s, done, err := bootstrap.OpenSession(ctx, cfg, Logger)
	if err != nil {
		return err
	}
	defer done()
	if s.State() != service.StateUninitialized {
		return errors.New("vault is already set up")
	}

	pw := cfg.MasterPassword
	if pw == "" {
		if pw, err = readSecret("New master password: "); err != nil {
			return err
		}
		confirm, err := readSecret("Repeat master password: ")
		if err != nil {
			return err
		}
		if pw != confirm {
			return errors.New("passwords do not match")
		}
	}
	if err := s.Setup(ctx, pw); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Vault created (%s: %s)\n", cfg.StorageDriver, cfg.StoragePath())
	return nil
}

func init() { RegisterCmd(initCmd{}) }

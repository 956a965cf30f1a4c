package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"PassKeeper/internal/config"
	"PassKeeper/internal/service"
)

type importCmd struct{}

func (importCmd) Name() string { return "import" }
func (importCmd) Description() string {
	return "Replace all entries with a JSON backup (file or - for stdin)"
}
func (importCmd) Usage() string { return "import <file|->" }

func (c importCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return runVault(ctx, cfg, c, args)
}

func (importCmd) bind(args []string) (action, error) {
	if len(args) != 1 {
		return nil, ErrUsage
	}
	file := args[0]

	return func(ctx context.Context, s *service.Session) error {
		var (
			data []byte
			err  error
		)
		if file == "-" {
			data, err = io.ReadAll(lineReader())
		} else {
			data, err = os.ReadFile(file)
		}
		if err != nil {
			return fmt.Errorf("read import: %w", err)
		}
		n, err := s.Import(ctx, string(data))
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Imported %d entries\n", n)
		return nil
	}, nil
}

func init() { RegisterCmd(importCmd{}) }

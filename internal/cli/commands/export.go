package commands

import (
	"context"
	"fmt"
	"os"

	"PassKeeper/internal/config"
	"PassKeeper/internal/service"
)

type exportCmd struct{}

func (exportCmd) Name() string { return "export" }
func (exportCmd) Description() string {
	return "Write a plaintext JSON backup to a file (0600) or stdout"
}
func (exportCmd) Usage() string { return "export [file]" }

func (c exportCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return runVault(ctx, cfg, c, args)
}

func (exportCmd) bind(args []string) (action, error) {
	if len(args) > 1 {
		return nil, ErrUsage
	}
	var file string
	if len(args) == 1 {
		file = args[0]
	}

	return func(ctx context.Context, s *service.Session) error {
		data, err := s.Export(ctx)
		if err != nil {
			return err
		}
		if file == "" || file == "-" {
			fmt.Fprintln(Out, data)
			return nil
		}
		if err := os.WriteFile(file, []byte(data+"\n"), 0o600); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(Out, "Exported to %s (contains plaintext passwords)\n", file)
		return nil
	}, nil
}

func init() { RegisterCmd(exportCmd{}) }

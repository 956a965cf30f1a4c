package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"PassKeeper/internal/common"
	"PassKeeper/internal/config"
	"PassKeeper/internal/service"
)

type deleteCmd struct{}

func (deleteCmd) Name() string        { return "delete" }
func (deleteCmd) Description() string { return "Delete an entry" }
func (deleteCmd) Usage() string       { return "delete <id|title>" }

func (c deleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return runVault(ctx, cfg, c, args)
}

func (deleteCmd) bind(args []string) (action, error) {
	if len(args) == 0 {
		return nil, ErrUsage
	}
	ref := strings.Join(args, " ")

	return func(ctx context.Context, s *service.Session) error {
		id, err := findEntry(ctx, s, ref)
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintln(Out, "Nothing to delete")
			return nil
		}
		if err != nil {
			return err
		}
		if err := s.DeleteEntry(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Deleted: %s\n", id)
		return nil
	}, nil
}

func init() { RegisterCmd(deleteCmd{}) }

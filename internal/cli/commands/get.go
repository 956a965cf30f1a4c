package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"PassKeeper/internal/config"
	"PassKeeper/internal/service"
)

type getCmd struct{}

func (getCmd) Name() string        { return "get" }
func (getCmd) Description() string { return "Show one entry (password hidden unless -show)" }
func (getCmd) Usage() string       { return "get [-show] <id|title>" }

func (c getCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return runVault(ctx, cfg, c, args)
}

func (getCmd) bind(args []string) (action, error) {
	fs := newFlagSet("get")
	show := fs.Bool("show", false, "print the password")
	if err := fs.Parse(args); err != nil || fs.NArg() == 0 {
		return nil, ErrUsage
	}
	ref := strings.Join(fs.Args(), " ")

	return func(ctx context.Context, s *service.Session) error {
		id, err := findEntry(ctx, s, ref)
		if err != nil {
			return err
		}
		r, err := s.GetEntry(ctx, id)
		if err != nil {
			return err
		}
		pw := "********"
		if *show {
			pw = r.Password
		}
		fmt.Fprintf(Out, "id:       %s\n", r.ID)
		fmt.Fprintf(Out, "title:    %s\n", r.Title)
		fmt.Fprintf(Out, "username: %s\n", r.Username)
		fmt.Fprintf(Out, "password: %s\n", pw)
		if r.URL != "" {
			fmt.Fprintf(Out, "url:      %s\n", r.URL)
		}
		if r.Notes != "" {
			fmt.Fprintf(Out, "notes:    %s\n", r.Notes)
		}
		fmt.Fprintf(Out, "category: %s\n", r.EffectiveCategory())
		fmt.Fprintf(Out, "updated:  %s\n", time.UnixMilli(r.UpdatedAt).Format(time.RFC3339))
		return nil
	}, nil
}

func init() { RegisterCmd(getCmd{}) }

package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"PassKeeper/internal/config"
	"PassKeeper/internal/model"
	"PassKeeper/internal/service"
)

type listCmd struct{}

func (listCmd) Name() string        { return "list" }
func (listCmd) Description() string { return "List entries, optionally filtered" }
func (listCmd) Usage() string       { return "list [-q text] [-c category] [-categories]" }

func (c listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return runVault(ctx, cfg, c, args)
}

func (listCmd) bind(args []string) (action, error) {
	fs := newFlagSet("list")
	query := fs.String("q", "", "search text")
	category := fs.String("c", "", "category")
	counts := fs.Bool("categories", false, "show counts per category")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return nil, ErrUsage
	}
	cat, err := model.ParseCategory(*category)
	if err != nil {
		return nil, err
	}

	if *counts {
		return func(ctx context.Context, s *service.Session) error {
			m, err := s.Categories(ctx)
			if err != nil {
				return err
			}
			for _, c := range model.Categories() {
				fmt.Fprintf(Out, "%-9s %d\n", c, m[c])
			}
			return nil
		}, nil
	}

	return func(ctx context.Context, s *service.Session) error {
		list, err := s.SearchEntries(ctx, service.Filter{Query: *query, Category: cat})
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(Out, "No entries")
			return nil
		}
		tw := tabwriter.NewWriter(Out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tUSERNAME\tCATEGORY")
		for _, r := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Title, r.Username, r.EffectiveCategory())
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Total: %d\n", len(list))
		return nil
	}, nil
}

func init() { RegisterCmd(listCmd{}) }

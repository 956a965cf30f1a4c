package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"PassKeeper/internal/config"
	"PassKeeper/internal/generator"
	"PassKeeper/internal/model"
	"PassKeeper/internal/service"
)

type editCmd struct{}

func (editCmd) Name() string        { return "edit" }
func (editCmd) Description() string { return "Change fields of an entry; only given flags are changed" }
func (editCmd) Usage() string {
	return "edit [-title t] [-u user] [-p password|-gen] [-url url] [-notes text] [-c category] <id|title>"
}

func (c editCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return runVault(ctx, cfg, c, args)
}

func (editCmd) bind(args []string) (action, error) {
	fs := newFlagSet("edit")
	title := fs.String("title", "", "new title")
	user := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	gen := fs.Bool("gen", false, "generate a new password")
	url := fs.String("url", "", "url")
	notes := fs.String("notes", "", "notes")
	category := fs.String("c", "", "category")
	if err := fs.Parse(args); err != nil || fs.NArg() == 0 || fs.NFlag() == 0 {
		return nil, ErrUsage
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["gen"] && set["p"] {
		return nil, ErrUsage
	}
	cat, err := model.ParseCategory(*category)
	if err != nil {
		return nil, err
	}
	ref := strings.Join(fs.Args(), " ")

	return func(ctx context.Context, s *service.Session) error {
		id, err := findEntry(ctx, s, ref)
		if err != nil {
			return err
		}
		rec, err := s.GetEntry(ctx, id)
		if err != nil {
			return err
		}
		if set["title"] {
			rec.Title = *title
		}
		if set["u"] {
			rec.Username = *user
		}
		if set["p"] {
			rec.Password = *password
		}
		if *gen {
			if rec.Password, err = generator.Secure(); err != nil {
				return err
			}
		}
		if set["url"] {
			rec.URL = *url
		}
		if set["notes"] {
			rec.Notes = *notes
		}
		if set["c"] {
			rec.Category = cat
		}
		updated, err := s.UpdateEntry(ctx, rec)
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, "Updated:")
		fmt.Fprintf(Out, "  id:    %s\n", updated.ID)
		fmt.Fprintf(Out, "  title: %s\n", updated.Title)
		if *gen {
			fmt.Fprintf(Out, "  password: %s\n", updated.Password)
		}
		return nil
	}, nil
}

func init() { RegisterCmd(editCmd{}) }

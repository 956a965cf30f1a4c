package commands

import (
	"context"
	"fmt"
	"strings"

	"PassKeeper/internal/config"
	"PassKeeper/internal/generator"
	"PassKeeper/internal/model"
	"PassKeeper/internal/service"
)

type addCmd struct{}

func (addCmd) Name() string        { return "add" }
func (addCmd) Description() string { return "Add an entry (password is prompted unless -p or -gen)" }
func (addCmd) Usage() string {
	return "add [-u user] [-url url] [-notes text] [-c category] [-p password|-gen] <title>"
}

func (c addCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return runVault(ctx, cfg, c, args)
}

func (addCmd) bind(args []string) (action, error) {
	fs := newFlagSet("add")
	user := fs.String("u", "", "username")
	url := fs.String("url", "", "url")
	notes := fs.String("notes", "", "notes")
	category := fs.String("c", "", "category")
	password := fs.String("p", "", "password")
	gen := fs.Bool("gen", false, "generate a strong password")
	if err := fs.Parse(args); err != nil || fs.NArg() == 0 {
		return nil, ErrUsage
	}
	if *gen && *password != "" {
		return nil, ErrUsage
	}
	cat, err := model.ParseCategory(*category)
	if err != nil {
		return nil, err
	}
	rec := model.CredentialRecord{
		Title:    strings.Join(fs.Args(), " "),
		Username: *user,
		Password: *password,
		URL:      *url,
		Notes:    *notes,
		Category: cat,
	}

	return func(ctx context.Context, s *service.Session) error {
		switch {
		case *gen:
			if rec.Password, err = generator.Secure(); err != nil {
				return err
			}
		case rec.Password == "":
			if rec.Password, err = readSecret("Entry password: "); err != nil {
				return err
			}
		}
		created, err := s.AddEntry(ctx, rec)
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, "Created:")
		fmt.Fprintf(Out, "  id:    %s\n", created.ID)
		fmt.Fprintf(Out, "  title: %s\n", created.Title)
		if *gen {
			fmt.Fprintf(Out, "  password: %s\n", created.Password)
		}
		return nil
	}, nil
}

func init() { RegisterCmd(addCmd{}) }

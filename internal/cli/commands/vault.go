package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"PassKeeper/internal/cli/bootstrap"
	"PassKeeper/internal/common"
	"PassKeeper/internal/config"
	"PassKeeper/internal/service"
)

// action — действие команды над разблокированной сессией.
type action func(ctx context.Context, s *service.Session) error

// vaultCmd — команда, которой нужен ключ хранилища.
// bind разбирает аргументы до запроса мастер-пароля.
type vaultCmd interface {
	Command
	bind(args []string) (action, error)
}

// runVault открывает хранилище, разблокирует его и выполняет действие.
// Ключ живёт только на время команды.
func runVault(ctx context.Context, cfg *config.Config, c vaultCmd, args []string) error {
	act, err := c.bind(args)
	if err != nil {
		return err
	}
	s, done, err := bootstrap.OpenSession(ctx, cfg, Logger)
	if err != nil {
		return err
	}
	defer done()
	if err := unlock(ctx, s, cfg); err != nil {
		return err
	}
	return act(ctx, s)
}

func unlock(ctx context.Context, s *service.Session, cfg *config.Config) error {
	switch s.State() {
	case service.StateUnlocked:
		return nil
	case service.StateUninitialized:
		return fmt.Errorf("%w: run `pkcli init` first", common.ErrNotSetUp)
	}
	pw, err := masterPassword(cfg)
	if err != nil {
		return err
	}
	return s.Login(ctx, pw)
}

// newFlagSet — FlagSet команды без вывода в stderr; ошибки разбора превращаются в ErrUsage.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// findEntry ищет запись по ID, а если не нашлась — по точному названию (без учёта регистра).
func findEntry(ctx context.Context, s *service.Session, ref string) (string, error) {
	if rec, err := s.GetEntry(ctx, ref); err == nil {
		return rec.ID, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return "", err
	}
	all, err := s.ListEntries(ctx)
	if err != nil {
		return "", err
	}
	var id string
	for _, r := range all {
		if equalFold(r.Title, ref) {
			if id != "" {
				return "", errors.New("several entries have this title, use the id")
			}
			id = r.ID
		}
	}
	if id == "" {
		return "", common.ErrNotFound
	}
	return id, nil
}

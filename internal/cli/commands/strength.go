package commands

import (
	"context"
	"fmt"

	"PassKeeper/internal/config"
	"PassKeeper/internal/service"
	"PassKeeper/internal/strength"
)

type strengthCmd struct{}

func (strengthCmd) Name() string        { return "strength" }
func (strengthCmd) Description() string { return "Rate a password (prompted when not given)" }
func (strengthCmd) Usage() string       { return "strength [password]" }

func (strengthCmd) Run(_ context.Context, _ *config.Config, args []string) error {
	var pw string
	switch len(args) {
	case 0:
		var err error
		if pw, err = readSecret("Password: "); err != nil {
			return err
		}
	case 1:
		pw = args[0]
	default:
		return ErrUsage
	}
	res := strength.Evaluate(pw)
	fmt.Fprintf(Out, "Strength: %s (%d/%d)\n", res.Label, res.Score, strength.MaxScore)
	for _, f := range res.Feedback {
		fmt.Fprintf(Out, "  - %s\n", f)
	}
	if res.Score < service.MinStrengthScore {
		fmt.Fprintln(Out, "Not acceptable as a master password")
	}
	return nil
}

func init() { RegisterCmd(strengthCmd{}) }

package commands

import (
	"context"
	"fmt"

	"PassKeeper/internal/config"
	"PassKeeper/internal/generator"
	"PassKeeper/internal/strength"
)

type generateCmd struct{}

func (generateCmd) Name() string        { return "generate" }
func (generateCmd) Description() string { return "Generate a password, PIN or passphrase" }
func (generateCmd) Usage() string {
	return "generate [-type password|pin|passphrase] [-n length|words] [-no-upper] [-no-lower] [-no-numbers] [-no-symbols]"
}

func (generateCmd) Run(_ context.Context, _ *config.Config, args []string) error {
	fs := newFlagSet("generate")
	kind := fs.String("type", "password", "password|pin|passphrase")
	n := fs.Int("n", 0, "length (password, pin) or word count (passphrase)")
	noUpper := fs.Bool("no-upper", false, "exclude uppercase")
	noLower := fs.Bool("no-lower", false, "exclude lowercase")
	noNumbers := fs.Bool("no-numbers", false, "exclude numbers")
	noSymbols := fs.Bool("no-symbols", false, "exclude symbols")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 || *n < 0 {
		return ErrUsage
	}

	var (
		value string
		err   error
	)
	switch *kind {
	case "password":
		opts := generator.DefaultOptions()
		if *n > 0 {
			opts.Length = *n
		}
		opts.IncludeUppercase = !*noUpper
		opts.IncludeLowercase = !*noLower
		opts.IncludeNumbers = !*noNumbers
		opts.IncludeSymbols = !*noSymbols
		value, err = generator.Password(opts)
	case "pin":
		value, err = generator.PIN(*n)
	case "passphrase":
		value, err = generator.Passphrase(*n)
	default:
		return ErrUsage
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, value)
	res := strength.Evaluate(value)
	fmt.Fprintf(Out, "Strength: %s (%d/%d)\n", res.Label, res.Score, strength.MaxScore)
	return nil
}

func init() { RegisterCmd(generateCmd{}) }

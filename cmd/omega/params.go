package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/omega76/dsp/param"
	"github.com/cwbudde/omega76/internal/cli"
)

// ParamsCmd lists the control layout.
type ParamsCmd struct {
	Set []string `short:"s" help:"Set a control before listing. Repeatable." placeholder:"ID=VALUE"`
}

// Run prints every control with its range and value.
func (c *ParamsCmd) Run(_ *Globals) error {
	store := param.NewStore(param.DefaultLayout())
	if err := store.Apply(c.Set...); err != nil {
		return err
	}

	cli.PrintSection(os.Stdout, "Controls")

	for _, s := range store.Layout().Specs() {
		cli.PrintKeyValue(os.Stdout, s.ID, fmt.Sprintf("%-12s %s", store.Format(s.ID), describe(s)))
	}

	return nil
}

func describe(s param.Spec) string {
	switch s.Kind {
	case param.KindFloat:
		return fmt.Sprintf("[%s .. %s]", s.Format(s.Min), s.Format(s.Max))
	case param.KindBool:
		return "[on|off]"
	default:
		return fmt.Sprintf("%v", s.Choices)
	}
}

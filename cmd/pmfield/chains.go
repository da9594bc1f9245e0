package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/common"
	"github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/exponents"
	"github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/fieldElements"
)

func (a *app) chainsCmd() *cobra.Command {
	var (
		window uint
		script bool
		search string
	)
	cmd := &cobra.Command{
		Use:   "chains <field>",
		Short: "Show the exponentiation chains used for inversion, square roots and Legendre symbols",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.field(args[0])
			if err != nil {
				return err
			}
			chains, err := chainsForWindow(f, window)
			if err != nil {
				return err
			}
			if search != "" {
				return a.searchChain(chains, search, window)
			}
			for _, c := range chains {
				fmt.Fprintln(a.out, c)
				if script {
					s, err := c.Script()
					if err != nil {
						return err
					}
					fmt.Fprintln(a.out, s)
				}
			}
			return nil
		},
	}
	cmd.Flags().UintVar(&window, "window", 0, fmt.Sprintf("window size of the chains, at most %d (0 means the field's own setting)", common.MaxChainWindow))
	cmd.Flags().BoolVar(&script, "script", false, "also print each chain as an addchain script")
	cmd.Flags().StringVar(&search, "search", "", "compare the named chain (e.g. inverse) against addchain's search algorithms")
	return cmd
}

// chainsForWindow returns the field's chains, recompiled with the given window unless window is 0.
func chainsForWindow(f *fieldElements.Field, window uint) ([]*exponents.Chain, error) {
	chains := f.Exponents().All()
	if window == 0 {
		return chains, nil
	}
	ret := make([]*exponents.Chain, len(chains))
	for i, c := range chains {
		recompiled, err := exponents.Compile(c.Name(), c.Exponent(), window)
		if err != nil {
			return nil, err
		}
		ret[i] = recompiled
	}
	return ret, nil
}

func (a *app) searchChain(chains []*exponents.Chain, name string, window uint) error {
	var target *exponents.Chain
	for _, c := range chains {
		// chain names are prefixed by the field name
		if strings.HasSuffix(c.Name(), " "+name) {
			target = c
		}
	}
	if target == nil {
		return errors.Errorf("no chain named %q", name)
	}
	if window == 0 {
		window = target.Window()
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "algorithm\tsquarings\tmultiplications\ttotal\n")
	for _, r := range exponents.Search(target.Exponent(), window) {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\tfailed: %v\t\t\n", r.Algorithm, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", r.Algorithm, r.Squarings, r.Multiplications, r.Total())
	}
	return tw.Flush()
}

package main

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/fieldElements"
)

// operation is a field operation exposed by the eval command. Arguments are already parsed as field elements.
type operation struct {
	arity int
	help  string
	run   func(f *fieldElements.Field, args []fieldElements.Element) (string, error)
}

var (
	errNotASquare = errors.New("argument is not a square")
	errNoQuartic  = errors.New("quartic residue symbol is only available for p == 5 mod 8")
)

// element is shorthand for operations whose result is a field element.
func (a *app) element(op func(z *fieldElements.Element, args []fieldElements.Element)) func(*fieldElements.Field, []fieldElements.Element) (string, error) {
	return func(f *fieldElements.Field, args []fieldElements.Element) (string, error) {
		z := f.Zero()
		op(&z, args)
		return a.formatElement(&z), nil
	}
}

func nonZero(x *fieldElements.Element) error {
	if x.IsZero() {
		return fieldElements.ErrDivisionByZero
	}
	return nil
}

func (a *app) operations() map[string]operation {
	return map[string]operation{
		"add": {2, "x + y", a.element(func(z *fieldElements.Element, xs []fieldElements.Element) { z.Add(&xs[0], &xs[1]) })},
		"sub": {2, "x - y", a.element(func(z *fieldElements.Element, xs []fieldElements.Element) { z.Sub(&xs[0], &xs[1]) })},
		"mul": {2, "x * y", a.element(func(z *fieldElements.Element, xs []fieldElements.Element) { z.Mul(&xs[0], &xs[1]) })},
		"div": {2, "x / y", func(f *fieldElements.Field, xs []fieldElements.Element) (string, error) {
			if err := nonZero(&xs[1]); err != nil {
				return "", err
			}
			z := f.Zero()
			z.Divide(&xs[0], &xs[1])
			return a.formatElement(&z), nil
		}},
		"neg":    {1, "-x", a.element(func(z *fieldElements.Element, xs []fieldElements.Element) { z.Neg(&xs[0]) })},
		"square": {1, "x^2", a.element(func(z *fieldElements.Element, xs []fieldElements.Element) { z.Square(&xs[0]) })},
		"abs":    {1, "x or -x, whichever has sign 0", a.element(func(z *fieldElements.Element, xs []fieldElements.Element) { z.Abs(&xs[0]) })},
		"inv": {1, "1 / x", func(f *fieldElements.Field, xs []fieldElements.Element) (string, error) {
			if err := nonZero(&xs[0]); err != nil {
				return "", err
			}
			z := f.Zero()
			z.Inv(&xs[0])
			return a.formatElement(&z), nil
		}},
		"sqrt": {1, "a square root of x", func(f *fieldElements.Field, xs []fieldElements.Element) (string, error) {
			z := f.Zero()
			if z.Sqrt(&xs[0]) < 0 {
				return "", errNotASquare
			}
			return a.formatElement(&z), nil
		}},
		"invsqrt": {1, "1 / sqrt(x)", func(f *fieldElements.Field, xs []fieldElements.Element) (string, error) {
			if err := nonZero(&xs[0]); err != nil {
				return "", err
			}
			z := f.Zero()
			if z.InvSqrt(&xs[0]) < 0 {
				return "", errNotASquare
			}
			return a.formatElement(&z), nil
		}},
		"legendre": {1, "Legendre symbol of x", func(f *fieldElements.Field, xs []fieldElements.Element) (string, error) {
			return fmt.Sprint(xs[0].Legendre()), nil
		}},
		"quartic": {1, "quartic residue symbol of x", func(f *fieldElements.Field, xs []fieldElements.Element) (string, error) {
			if f.Is3Mod4() {
				return "", errNoQuartic
			}
			return fmt.Sprint(xs[0].LegendreQuartic()), nil
		}},
		"sign": {1, "sign of x", func(f *fieldElements.Field, xs []fieldElements.Element) (string, error) {
			return fmt.Sprint(xs[0].Sign()), nil
		}},
		"pack": {1, "little-endian serialization of x, hex encoded", func(f *fieldElements.Field, xs []fieldElements.Element) (string, error) {
			return hex.EncodeToString(xs[0].Bytes()), nil
		}},
	}
}

func (a *app) evalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <field> <operation> [arguments...]",
		Short: "Evaluate a field operation",
		Long: "Evaluate a field operation. Arguments are integers in decimal or with 0x, 0o, 0b prefix and are reduced modulo p.\n" +
			"The unpack operation instead takes a hex-encoded little-endian serialization.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.field(args[0])
			if err != nil {
				return err
			}
			result, err := a.eval(f, args[1], args[2:])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, result)
			return nil
		},
	}
	cmd.Long += "\n\nOperations:\n" + a.operationHelp()
	// everything after <field> is positional, so that negative numbers are not taken for flags
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (a *app) operationHelp() string {
	ops := a.operations()
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "  %-9s %s\n", name, ops[name].help)
	}
	fmt.Fprintf(&b, "  %-9s %s\n", "unpack", "field element from its serialization")
	return b.String()
}

func (a *app) eval(f *fieldElements.Field, opName string, rawArgs []string) (string, error) {
	a.logger.Debug("evaluating", zap.String("field", f.Name()), zap.String("operation", opName), zap.Strings("arguments", rawArgs))
	if opName == "unpack" {
		if len(rawArgs) != 1 {
			return "", errors.Errorf("unpack expects 1 argument, got %d", len(rawArgs))
		}
		buf, err := hex.DecodeString(rawArgs[0])
		if err != nil {
			return "", errors.Wrap(err, "invalid hex input")
		}
		z, err := f.FromBytes(buf)
		if err != nil {
			return "", err
		}
		return a.formatElement(&z), nil
	}

	op, ok := a.operations()[opName]
	if !ok {
		return "", errors.Errorf("unknown operation %q", opName)
	}
	if len(rawArgs) != op.arity {
		return "", errors.Errorf("%s expects %d argument(s), got %d", opName, op.arity, len(rawArgs))
	}
	args := make([]fieldElements.Element, len(rawArgs))
	for i, s := range rawArgs {
		x, err := f.FromString(s)
		if err != nil {
			return "", err
		}
		args[i] = x
	}
	return op.run(f, args)
}

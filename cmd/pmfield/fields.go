package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/fieldElements"
)

// fieldDescription is the YAML output of the fields command.
type fieldDescription struct {
	Name          string `yaml:"name"`
	Bits          int    `yaml:"bits"`
	C             uint64 `yaml:"c"`
	Modulus       string `yaml:"modulus"`
	Digits        int    `yaml:"digits"`
	DigitBits     uint   `yaml:"digitBits"`
	HighDigitBits uint   `yaml:"highDigitBits"`
	PackedBytes   int    `yaml:"packedBytes"`
	Congruence    string `yaml:"congruence"`
	Custom        bool   `yaml:"custom,omitempty"`
}

func describeField(f *fieldElements.Field, custom bool) fieldDescription {
	params := f.Parameters()
	congruence := "5 mod 8"
	if f.Is3Mod4() {
		congruence = "3 mod 4"
	}
	return fieldDescription{
		Name:          f.Name(),
		Bits:          f.NumBits(),
		C:             params.C,
		Modulus:       "0x" + f.Modulus().Text(16),
		Digits:        params.Digits,
		DigitBits:     params.DigitBits,
		HighDigitBits: params.HighDigitBits(),
		PackedBytes:   f.PackedBytes(),
		Congruence:    congruence,
		Custom:        custom,
	}
}

func (a *app) fieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the available fields as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var descriptions []fieldDescription
			for _, f := range a.fields() {
				_, custom := a.custom[f.Name()]
				descriptions = append(descriptions, describeField(f, custom))
			}
			enc := yaml.NewEncoder(a.out)
			enc.SetIndent(2)
			if err := enc.Encode(descriptions); err != nil {
				return errors.Wrap(err, "cannot encode field list")
			}
			return enc.Close()
		},
	}
}

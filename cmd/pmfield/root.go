package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/fieldElements"
)

// app holds the state shared by all subcommands. It is filled in by the root command's PersistentPreRunE.
type app struct {
	out, errOut io.Writer
	configPath  string
	cfg         *Config
	logger      *zap.Logger
	custom      map[string]*fieldElements.Field
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}
	rootCmd := &cobra.Command{
		Use:           "pmfield",
		Short:         "Arithmetic in pseudo-Mersenne prime fields",
		Long:          "pmfield evaluates operations in pseudo-Mersenne prime fields GF(2^n - c) and shows how they are computed.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path of a YAML config file")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("format", formatHex, "output format of field elements (hex or dec)")

	rootCmd.AddCommand(a.fieldsCmd(), a.evalCmd(), a.chainsCmd())
	return rootCmd
}

// execute runs cmd and reports errors on errOut, since the root command silences cobra's own error output.
func execute(cmd *cobra.Command, errOut io.Writer) error {
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(errOut, "Error:", err)
	}
	return err
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.logger, err = newLogger(cfg.LogLevel, a.errOut); err != nil {
		return err
	}
	fieldElements.SetLogger(a.logger)

	a.custom = make(map[string]*fieldElements.Field, len(cfg.Fields))
	for _, params := range cfg.Fields {
		if _, err := fieldElements.Builtin(params.Name); err == nil {
			return errors.Errorf("custom field %v has the name of a builtin field", params.Name)
		}
		f, err := fieldElements.NewField(params)
		if err != nil {
			return errors.WithMessagef(err, "cannot construct custom field %v", params.Name)
		}
		a.custom[params.Name] = f
	}
	a.logger.Debug("configuration loaded", zap.String("config", a.configPath), zap.Int("customFields", len(a.custom)), zap.String("format", cfg.Format))
	return nil
}

// field returns the builtin or custom field with the given name.
func (a *app) field(name string) (*fieldElements.Field, error) {
	if f, ok := a.custom[name]; ok {
		return f, nil
	}
	return fieldElements.Builtin(name)
}

// fields returns all builtin fields followed by the custom fields in config order.
func (a *app) fields() []*fieldElements.Field {
	ret := fieldElements.BuiltinFields()
	for _, params := range a.cfg.Fields {
		ret = append(ret, a.custom[params.Name])
	}
	return ret
}

// formatElement formats x according to the configured output format.
func (a *app) formatElement(x *fieldElements.Element) string {
	if a.cfg.Format == formatDec {
		return fmt.Sprintf("%d", x)
	}
	return fmt.Sprintf("%#x", x)
}

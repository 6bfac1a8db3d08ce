// seehuhn.de/go/label - load and lay out packaged label documents
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"seehuhn.de/go/label"
	"seehuhn.de/go/label/fontmetrics"
	"seehuhn.de/go/label/internal/config"
	"seehuhn.de/go/label/labelfile"
	"seehuhn.de/go/label/resolve"
	"seehuhn.de/go/label/sample"
	"seehuhn.de/go/label/script"
)

// app holds the state shared by all subcommands.
type app struct {
	cfgFile        string
	verbose        bool
	promptPassword bool
	noSamples      bool
	noScripts      bool

	cfg    *config.Config
	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "labeltool",
		Short: "Inspect packaged label files",
		Long: titleStyle.Render("labeltool") + mutedStyle.Render(" - inspect packaged label files") + `

labeltool loads a label file, fills in provisional sample values,
evaluates the label functions and lays out the label items.

` + mutedStyle.Render("Examples:") + `
  labeltool info shelf.nlbl              Show size and contents
  labeltool vars shelf.nlbl -f toml      Export the variable values
  labeltool resolve shelf.nlbl           Show the text of every item
  labeltool layout shelf.nlbl            Show item positions and font sizes
  labeltool check shelf.nlbl             Look for broken references
  labeltool inspect shelf.nlbl Total     Explain a function reference`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "configuration file (default: labeltool.toml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "show debug messages")
	flags.BoolVarP(&a.promptPassword, "ask-password", "p", false, "ask for the archive password")
	flags.BoolVar(&a.noSamples, "no-samples", false, "do not fill in provisional sample values")
	flags.BoolVar(&a.noScripts, "no-scripts", false, "show sample values instead of running scripts")

	root.AddCommand(
		a.infoCmd(),
		a.varsCmd(),
		a.resolveCmd(),
		a.layoutCmd(),
		a.checkCmd(),
		a.inspectCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.verbose {
		level = log.DebugLevel
	}
	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "labeltool",
		Level:  level,
	})
	if cfg.File != "" {
		a.logger.Debug("configuration loaded", "file", cfg.File)
	}

	if a.promptPassword {
		passwd, err := readPassword(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		a.cfg.Password = passwd
	}
	return nil
}

// readPassword reads a password from the terminal without echo.
func readPassword(prompt io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("cannot ask for password: standard input is not a terminal")
	}
	fmt.Fprint(prompt, "Password: ")
	passwd, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(passwd), "\r\n"), nil
}

// load reads a label file using the current configuration.
func (a *app) load(path string) (*label.Document, error) {
	opt := &labelfile.Options{
		Password:    a.cfg.Password,
		FillSamples: a.cfg.FillSamples && !a.noSamples,
		Logger:      a.logger,
	}
	if a.cfg.SampleTable != "" {
		table, err := sample.LoadTable(a.cfg.SampleTable)
		if err != nil {
			return nil, err
		}
		opt.Samples = table
	}
	return labelfile.Open(path, opt)
}

var errScriptsDisabled = errors.New("scripts are disabled")

func (a *app) resolver(doc *label.Document) *resolve.Resolver {
	var runner script.Runner
	if a.noScripts {
		runner = script.RunnerFunc(func(string, map[string]string) (string, error) {
			return "", errScriptsDisabled
		})
	} else {
		runner = script.WithTimeout(script.NewTemplate(), a.cfg.ScriptTimeout)
	}
	return resolve.New(doc, runner, &resolve.Options{Logger: a.logger})
}

func (a *app) fonts() (*fontmetrics.Registry, error) {
	reg, err := fontmetrics.New(&fontmetrics.Options{Logger: a.logger})
	if err != nil {
		return nil, err
	}
	for _, dir := range a.cfg.FontDirs {
		n, err := reg.AddDir(dir)
		if err != nil {
			a.logger.Warn("cannot read font directory", "dir", dir, "err", err)
			continue
		}
		a.logger.Debug("fonts loaded", "dir", dir, "count", n)
	}
	for name, target := range a.cfg.FontAliases {
		if !reg.Has(target) {
			a.logger.Warn("font alias target not found", "alias", name, "font", target)
			continue
		}
		reg.Alias(name, target)
	}
	return reg, nil
}

// setValues applies "name=value" assignments to the variables.
func setValues(r *resolve.Resolver, assignments []string) error {
	for _, s := range assignments {
		name, value, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("invalid assignment %q, expected name=value", s)
		}
		if err := r.SetVariable(name, value); err != nil {
			return err
		}
	}
	return nil
}

func printField(w io.Writer, name string, value any) {
	fmt.Fprintln(w, labelStyle.Render(name)+fmt.Sprint(value))
}

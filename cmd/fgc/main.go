// Package main provides fgc, rendering graph descriptions into -filter_complex values from the command line
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"filtergraph-box/pkg/description"
	"filtergraph-box/pkg/filtergraph"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/gertd/go-pluralize"
	"github.com/urfave/cli/v2"
)

// Version contains the current version of the application.
// This value can be overridden during build using ldflags
var Version = "Development Version"

// Supported description formats
const (
	formatYaml = "yaml"
	formatJson = "json"
)

// Read FILE from the command line ("-" being stdin) and build it
func loadGraph(c *cli.Context) (*filtergraph.Graph, error) {
	if c.NArg() < 1 {
		return nil, fmt.Errorf("missing required argument: FILE")
	}
	path := c.Args().Get(0)

	var contents []byte
	var err error
	if path == "-" {
		contents, err = io.ReadAll(c.App.Reader)
	} else {
		contents, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %s : %w", path, err)
	}

	format, err := resolveFormat(c.String("format"), path)
	if err != nil {
		return nil, err
	}
	// JSON being valid YAML, only syntax has to be checked separately
	if format == formatJson && !json.Valid(contents) {
		return nil, fmt.Errorf("%s is not valid JSON", path)
	}

	d, err := description.Decode(bytes.NewReader(contents))
	if err != nil {
		return nil, err
	}
	g, _, err := d.Build()
	return g, err
}

// Explicit format first, then the file extension, then yaml
func resolveFormat(flag string, path string) (string, error) {
	switch strings.ToLower(flag) {
	case formatYaml, formatJson:
		return strings.ToLower(flag), nil
	case "":
		if strings.EqualFold(filepath.Ext(path), ".json") {
			return formatJson, nil
		}
		return formatYaml, nil
	default:
		return "", fmt.Errorf("unknown format %q, expected %s or %s", flag, formatYaml, formatJson)
	}
}

// renderCommand prints the graph of a description, after validating it unless --no-validate is set
func renderCommand(c *cli.Context) error {
	g, err := loadGraph(c)
	if err != nil {
		return err
	}
	rendered := g.String()
	if !c.Bool("no-validate") {
		if rendered, err = g.ValidatedString(); err != nil {
			printFindings(c.App.ErrWriter, err)
			return fmt.Errorf("graph is inconsistent, use --no-validate to render it anyway")
		}
	}
	_, err = fmt.Fprintln(c.App.Writer, rendered)
	return err
}

// validateCommand lists every finding of a description
func validateCommand(c *cli.Context) error {
	successStyle := color.New(color.FgGreen)
	pluralizeClient := pluralize.NewClient()

	g, err := loadGraph(c)
	if err != nil {
		return err
	}
	if err = g.Validate(); err != nil {
		n := printFindings(c.App.Writer, err)
		return fmt.Errorf("graph has %s", pluralizeClient.Pluralize("finding", n, true))
	}
	successStyle.Fprintf(c.App.Writer, "✅ Graph is valid, %s\n", pluralizeClient.Pluralize("chain", g.Len(), true))
	return nil
}

// Print findings in red, returning how many were printed
func printFindings(w io.Writer, err error) int {
	errorStyle := color.New(color.FgRed)
	valueStyle := color.New(color.Bold)

	var findings filtergraph.ValidationErrors
	if !errors.As(err, &findings) {
		errorStyle.Fprintf(w, "❌ %v\n", err)
		return 1
	}
	for _, f := range findings {
		valueStyle.Fprintf(w, "%s ", f.Kind())
		errorStyle.Fprintf(w, "❌ %s\n", f.Error())
	}
	return len(findings)
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Description format, yaml or json. Inferred from the file extension by default",
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "fgc",
		Usage:   "Render and check ffmpeg filter graph descriptions",
		Version: Version,
		Commands: []*cli.Command{
			{
				Name:      "render",
				Usage:     "Print the -filter_complex value of a description",
				ArgsUsage: "FILE",
				Action:    renderCommand,
				Flags: []cli.Flag{
					formatFlag(),
					&cli.BoolFlag{
						Name:  "no-validate",
						Usage: "Render the graph even if it is inconsistent",
					},
				},
			},
			{
				Name:      "validate",
				Usage:     "List every inconsistency of a description",
				ArgsUsage: "FILE",
				Action:    validateCommand,
				Flags:     []cli.Flag{formatFlag()},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		errorStyle := color.New(color.FgRed)
		errorStyle.Fprintf(os.Stderr, "⚠️ Error: %v\n", err)
		os.Exit(1)
	}
}

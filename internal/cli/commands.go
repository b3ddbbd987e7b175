package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-jobform/pkg/clipboard"
	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/openapi"
	"github.com/goliatone/go-jobform/pkg/orchestrator"
	"github.com/goliatone/go-jobform/pkg/urlbuilder"
)

func (c *CLI) actionsCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "actions",
		Short: "List the available actions and their fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			actions := c.actions.Actions()
			if asJSON {
				return writeJSON(c.out, map[string]any{"actions": actions})
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			for _, action := range actions {
				fmt.Fprintf(tw, "%s\t%s\n", action.ID, strings.Join(action.FieldNames(), ", "))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the registry as JSON")
	return cmd
}

func (c *CLI) fieldsCommand() *cobra.Command {
	var (
		rendererName string
		sets         []string
		build        bool
	)
	cmd := &cobra.Command{
		Use:   "fields <action>",
		Short: "Render the input fields of an action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseSets(sets)
			if err != nil {
				return err
			}
			orch, err := c.orchestrator()
			if err != nil {
				return err
			}
			output, err := orch.Generate(cmd.Context(), orchestrator.Request{
				ActionID: args[0],
				Renderer: rendererName,
				Values:   values,
				BuildURL: build,
			})
			if err != nil {
				return err
			}
			_, err = c.out.Write(output)
			return err
		},
	}
	cmd.Flags().StringVar(&rendererName, "renderer", "vanilla", "Renderer name")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Prefill a field (NAME=VALUE, repeatable)")
	cmd.Flags().BoolVar(&build, "build", false, "Build the URL from the prefilled values")
	return cmd
}

func (c *CLI) buildCommand() *cobra.Command {
	var (
		sets   []string
		doCopy bool
	)
	cmd := &cobra.Command{
		Use:   "build <action>",
		Short: "Build the job URL for an action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			values, err := parseSets(sets)
			if err != nil {
				return err
			}
			action, err := c.actions.Lookup(args[0])
			if err != nil {
				return err
			}
			transformer, err := c.transformer()
			if err != nil {
				return err
			}
			if transformer != nil {
				if err := transformer.Transform(ctx, &action); err != nil {
					return err
				}
			}
			for name := range values {
				if _, ok := action.Field(name); !ok {
					return fmt.Errorf("cli: action %q has no field %q", action.ID, name)
				}
			}

			url, err := c.builder.Build(action, urlbuilder.Values(values))
			if err != nil {
				var missing *urlbuilder.MissingFieldError
				if errors.As(err, &missing) {
					c.status.Failure("%s", missing.Message())
				}
				return err
			}
			fmt.Fprintln(c.out, url)

			if doCopy {
				button := clipboard.NewButton(c.clip, clipboard.ManualRevert(), clipboard.WithLogger(c.logger))
				if _, err := button.Copy(ctx, url); err != nil {
					var copyErr *clipboard.CopyError
					if errors.As(err, &copyErr) {
						c.status.Failure("%s", copyErr.Message())
					}
					return err
				}
				c.status.Success("%s", button.Label())
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field value (NAME=VALUE, repeatable)")
	cmd.Flags().BoolVar(&doCopy, "copy", false, "Copy the URL to the clipboard")
	return cmd
}

func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <url>",
		Short: "Split a generated URL back into action and parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := urlbuilder.Parse(args[0])
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "base\t%s\n", parsed.BaseURL)
			fmt.Fprintf(tw, "action\t%s\n", parsed.ActionID)
			for _, param := range parsed.Params {
				fmt.Fprintf(tw, "%s\t%s\n", param.Name, param.Value)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			action, err := c.actions.Lookup(parsed.ActionID)
			if err != nil {
				c.status.Warning("action %q is not in the registry", parsed.ActionID)
				return nil
			}
			for _, problem := range inspectProblems(action, parsed) {
				c.status.Warning("%s", problem)
			}
			return nil
		},
	}
}

// inspectProblems lists fields of action absent or empty in parsed.
func inspectProblems(action model.Action, parsed urlbuilder.Parsed) []string {
	var problems []string
	for _, field := range action.Fields {
		value, ok := parsed.Get(field.Name)
		if !ok || value == "" {
			problems = append(problems, (&urlbuilder.MissingFieldError{Name: field.Name, Label: field.DisplayLabel()}).Message())
		}
	}
	if action.ID == urlbuilder.FixedUnitAction {
		if value, _ := parsed.Get("UNIT_ID"); value != "1" {
			problems = append(problems, "UNIT_ID must be 1 for "+urlbuilder.FixedUnitAction)
		}
	}
	return problems
}

func (c *CLI) openapiCommand() *cobra.Command {
	var importPath string
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Export the actions as an OpenAPI document, or import one back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if importPath != "" {
				data, err := os.ReadFile(importPath)
				if err != nil {
					return fmt.Errorf("cli: read %s: %w", importPath, err)
				}
				reg, err := openapi.Import(cmd.Context(), data)
				if err != nil {
					return err
				}
				return writeJSON(c.out, map[string]any{"actions": reg.Actions()})
			}

			doc, err := openapi.Export(cmd.Context(), c.actions, c.builder)
			if err != nil {
				return err
			}
			return writeJSON(c.out, doc)
		},
	}
	cmd.Flags().StringVar(&importPath, "import", "", "Read an OpenAPI document and print the registry it describes")
	return cmd
}

func parseSets(sets []string) (map[string]string, error) {
	values := make(map[string]string, len(sets))
	for _, raw := range sets {
		name, value, ok := strings.Cut(raw, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("cli: --set %q must be NAME=VALUE", raw)
		}
		values[name] = value
	}
	return values, nil
}

func writeJSON(w io.Writer, payload any) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

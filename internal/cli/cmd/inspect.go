package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bnema/rove/internal/cli/model"
	"github.com/bnema/rove/internal/dom"
	"github.com/bnema/rove/internal/engine"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <document.html>",
	Short: "List the focus groups a document declares",
	Long: `Parses the document, runs one discovery and grid-inference pass per group,
and prints what the engine would manage: behavior, modifiers, item count,
grid shape and the initially reachable item.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := dom.ParseFile(args[0])
		if err != nil {
			return err
		}

		layout := model.NewLayout(doc, app.Config.Playground.ItemsPerRow)
		eng, err := engine.New(engine.Options{
			Focusable:  model.DefaultFocusable,
			Geometry:   layout,
			InferRoles: app.Config.Engine.InferRoles,
			Logger:     app.Logger,
		})
		if err != nil {
			return err
		}
		eng.Install(doc.Root)
		defer eng.Uninstall()

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("GROUP", "BEHAVIOR", "MODIFIERS", "ITEMS", "GRID", "ACTIVE")

		for _, g := range eng.Groups() {
			ts := g.Tokens()
			grid := "-"
			if ts.Grid {
				grid = fmt.Sprintf("%d rows", len(g.GridRows()))
			}
			t.Row(
				containerLabel(g.Element()),
				ts.Behavior.String(),
				strings.Join(modifierList(ts), " "),
				fmt.Sprintf("%d", len(g.Items())),
				grid,
				itemLabel(g.ActiveItem()),
			)
		}

		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

func containerLabel(el *dom.Element) string {
	if id, ok := el.Attr("id"); ok {
		return "#" + id
	}
	return el.Tag
}

func itemLabel(el *dom.Element) string {
	if el == nil {
		return "-"
	}
	if id, ok := el.Attr("id"); ok {
		return "#" + id
	}
	return el.Tag
}

func modifierList(ts engine.TokenSet) []string {
	var mods []string
	if ts.Wrap {
		mods = append(mods, "wrap")
	}
	if ts.InlineOnly {
		mods = append(mods, "inline")
	}
	if ts.BlockOnly {
		mods = append(mods, "block")
	}
	if !ts.Memory {
		mods = append(mods, "no-memory")
	}
	if ts.ShadowInclusive {
		mods = append(mods, "shadow-inclusive")
	}
	if ts.RowWrap {
		mods = append(mods, "row-wrap")
	}
	if ts.ColWrap {
		mods = append(mods, "col-wrap")
	}
	if ts.RowFlow {
		mods = append(mods, "row-flow")
	}
	if ts.ColFlow {
		mods = append(mods, "col-flow")
	}
	return mods
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

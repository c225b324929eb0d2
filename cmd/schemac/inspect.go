package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"schemac/internal/diag"
	"schemac/internal/project"
	"schemac/internal/resolver"
	"schemac/internal/schema"
	"schemac/internal/source"
	"schemac/internal/translator"
	"schemac/internal/ui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <fixture.toml> <StructName>",
	Short: "Step through a struct's translated bit layout",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fixturePath, structName := args[0], args[1]

		tree, err := project.LoadDeclarationFixture(fixturePath)
		if err != nil {
			return err
		}

		bag := diag.NewBag(1024)
		reporter := diag.BagReporter{Bag: bag}
		res := resolver.NewScoped(resolver.NewTable(), schema.NodeID(0))
		nt := translator.New(res, reporter, tree, tree.Root, schema.NodeID(1), true)
		set := nt.Finish()

		node, ok := findNode(set, tree.Interner, structName)
		if !ok {
			return fmt.Errorf("no struct named %q in %s", structName, fixturePath)
		}
		if node.Kind != schema.NodeStruct {
			return fmt.Errorf("%q is not a struct node", structName)
		}

		model := ui.NewInspectorModel(structName, node, tree.Interner)
		program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
		_, err = program.Run()
		return err
	},
}

func findNode(set schema.NodeSet, interner *source.Interner, name string) (schema.Node, bool) {
	if n, _ := interner.Lookup(set.Root.DisplayName); n == name {
		return set.Root, true
	}
	for _, g := range set.Groups {
		if n, _ := interner.Lookup(g.DisplayName); n == name {
			return g, true
		}
	}
	return schema.Node{}, false
}

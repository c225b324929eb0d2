package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new schemac project",
	Long: `Initialize a new schemac project by creating a project manifest (schema.toml)
and an example declaration fixture (example.toml). If [path|name] is omitted,
initializes the current directory. If a non-existing name is provided, a
directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "schemac-project"
	}

	manifestPath := filepath.Join(target, "schema.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	if err := os.WriteFile(manifestPath, []byte(buildDefaultManifest(name)), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	fixturePath := filepath.Join(target, "example.toml")
	createdFixture := false
	if _, err := os.Stat(fixturePath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(fixturePath, []byte(defaultExampleFixture()), 0o600); err != nil {
			return fmt.Errorf("failed to write example.toml: %w", err)
		}
		createdFixture = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized schemac project in %s\n", rel)
	fmt.Fprintf(cmd.OutOrStdout(), "  - schema.toml\n")
	if createdFixture {
		fmt.Fprintf(cmd.OutOrStdout(), "  - example.toml\n")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "  - example.toml (existing)\n")
	}
	return nil
}

func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`[project]
name = "%s"
out_dir = "."
cache_dir = ".schemac-cache"
compile_annotations = true

[[sources]]
path = "example.toml"
`, name)
}

func defaultExampleFixture() string {
	return `kind = "struct"
name = "Example"

[[children]]
kind = "field"
name = "id"
has_ordinal = true
ordinal = 0

[children.type]
name = "uint64"

[[children]]
kind = "field"
name = "label"
has_ordinal = true
ordinal = 1

[children.type]
name = "text"
`
}

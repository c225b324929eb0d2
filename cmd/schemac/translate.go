package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"schemac/internal/diag"
	"schemac/internal/driver"
	"schemac/internal/project"
	"schemac/internal/schema"
	"schemac/internal/source"
	"schemac/internal/ui"
)

var (
	translateFormat  string
	translateNoCache bool
	translateTUI     bool
)

func init() {
	translateCmd.Flags().StringVar(&translateFormat, "format", "pretty", "summary output format (pretty|json)")
	translateCmd.Flags().BoolVar(&translateNoCache, "no-cache", false, "disable the disk cache")
	translateCmd.Flags().BoolVar(&translateTUI, "progress", false, "show a live progress view while translating")
}

var translateCmd = &cobra.Command{
	Use:   "translate <project.toml>",
	Short: "Translate a project's declaration fixtures into schemas",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := project.LoadManifest(args[0])
		if err != nil {
			return err
		}

		var cache *driver.DiskCache
		if !translateNoCache {
			cache, err = driver.OpenDiskCache(m.CacheDir())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
		}

		quiet, _ := cmd.Flags().GetBool("quiet")
		maxDiag, _ := cmd.Flags().GetInt("max-diagnostics")
		timings, _ := cmd.Flags().GetBool("timings")

		var result *driver.Result
		var timingEvents []driver.Event
		switch {
		case translateTUI && !quiet && isTerminal(os.Stdout):
			result, err = runTranslateWithProgress(m, cache)
		case timings:
			sink := &timingSink{}
			result, err = driver.TranslateAll(m, cache, sink)
			timingEvents = sink.events
		default:
			result, err = driver.TranslateAll(m, cache, nil)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if strings.ToLower(translateFormat) == "json" {
			return renderTranslateJSON(out, result)
		}
		if !quiet {
			colorMode, _ := cmd.Flags().GetString("color")
			renderDiagnostics(out, result.Bag, maxDiag, wantColor(colorMode))
			renderTranslateSummary(out, result)
		}
		if timings && len(timingEvents) > 0 {
			renderTimings(out, timingEvents)
		}
		if result.Bag.HasErrors() {
			return fmt.Errorf("translation reported errors")
		}
		return nil
	},
}

// timingSink collects every progress event so --timings can report total
// elapsed time per stage once translation finishes.
type timingSink struct {
	events []driver.Event
}

func (s *timingSink) OnEvent(evt driver.Event) {
	s.events = append(s.events, evt)
}

func renderTimings(out io.Writer, events []driver.Event) {
	totals := make(map[driver.Stage]time.Duration)
	for _, e := range events {
		if e.Status == driver.StatusDone {
			totals[e.Stage] += e.Elapsed
		}
	}
	fmt.Fprintln(out, "timings:")
	for _, stage := range []driver.Stage{driver.StageLoad, driver.StageBootstrap, driver.StageFinish, driver.StageCache} {
		if d, ok := totals[stage]; ok {
			fmt.Fprintf(out, "  %-9s %s\n", stage, d)
		}
	}
}

func runTranslateWithProgress(m *project.Manifest, cache *driver.DiskCache) (*driver.Result, error) {
	ch := make(chan driver.Event, 64)
	sink := driver.ChannelSink{Ch: ch}
	model := ui.NewProgressModel("translate "+m.Project.Name, m.SourcePaths(), ch)
	prog := tea.NewProgram(model, tea.WithOutput(os.Stdout))

	var result *driver.Result
	var runErr error
	done := make(chan struct{})
	go func() {
		result, runErr = driver.TranslateAll(m, cache, sink)
		close(ch)
		close(done)
	}()

	if _, err := prog.Run(); err != nil {
		<-done
		return nil, err
	}
	<-done
	return result, runErr
}

var (
	severityErrorColor   = color.New(color.FgRed, color.Bold)
	severityWarningColor = color.New(color.FgYellow, color.Bold)
	severityInfoColor    = color.New(color.FgCyan)
)

func renderDiagnostics(out io.Writer, bag *diag.Bag, max int, useColor bool) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	items := bag.Items()
	if max > 0 && len(items) > max {
		items = items[:max]
	}
	for _, d := range items {
		fmt.Fprintf(out, "%s %s: %s\n", severityLabel(d.Severity, useColor), d.Code.ID(), d.Message)
		for _, n := range d.Notes {
			fmt.Fprintf(out, "    note: %s\n", n.Msg)
		}
	}
}

func severityLabel(s diag.Severity, useColor bool) string {
	switch s {
	case diag.SevError:
		if useColor {
			return severityErrorColor.Sprint("error")
		}
		return "error"
	case diag.SevWarning:
		if useColor {
			return severityWarningColor.Sprint("warning")
		}
		return "warning"
	default:
		if useColor {
			return severityInfoColor.Sprint("info")
		}
		return "info"
	}
}

// wantColor resolves the --color persistent flag (auto|on|off) against
// whether stdout is a terminal.
func wantColor(mode string) bool {
	switch strings.ToLower(mode) {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

func renderTranslateSummary(out io.Writer, result *driver.Result) {
	for i, set := range result.Sets {
		interner := result.Interners[i]
		name, _ := interner.Lookup(set.Root.DisplayName)
		if name == "" {
			name = result.Paths[i]
		}
		fmt.Fprintf(out, "%s\n", name)
		describeNode(out, set.Root, interner, "  ")
		for _, g := range set.Groups {
			describeNode(out, g, interner, "  ")
		}
	}
}

func describeNode(out io.Writer, n schema.Node, interner *source.Interner, indent string) {
	switch n.Kind {
	case schema.NodeStruct:
		fmt.Fprintf(out, "%sstruct: %d data word(s), %d pointer(s), %d field(s)\n",
			indent, n.Struct.DataWordCount, n.Struct.PointerCount, len(n.Struct.Fields))
	case schema.NodeEnum:
		fmt.Fprintf(out, "%senum: %d enumerant(s)\n", indent, len(n.Enum.Enumerants))
	case schema.NodeInterface:
		fmt.Fprintf(out, "%sinterface: %d method(s)\n", indent, len(n.Interface.Methods))
	case schema.NodeConst:
		fmt.Fprintf(out, "%sconst\n", indent)
	case schema.NodeAnnotation:
		fmt.Fprintf(out, "%sannotation\n", indent)
	}
}

type translateSummaryJSON struct {
	Path       string `json:"path"`
	Kind       string `json:"kind"`
	DataWords  uint16 `json:"data_words,omitempty"`
	Pointers   uint16 `json:"pointers,omitempty"`
	Fields     int    `json:"fields,omitempty"`
	Enumerants int    `json:"enumerants,omitempty"`
	Methods    int    `json:"methods,omitempty"`
	GroupCount int    `json:"group_count"`
}

type translateResultJSON struct {
	Nodes      []translateSummaryJSON `json:"nodes"`
	ErrorCount int                    `json:"error_count"`
	WarnCount  int                    `json:"warning_count"`
}

func renderTranslateJSON(out io.Writer, result *driver.Result) error {
	payload := translateResultJSON{}
	for i, set := range result.Sets {
		s := translateSummaryJSON{Path: result.Paths[i], GroupCount: len(set.Groups)}
		switch set.Root.Kind {
		case schema.NodeStruct:
			s.Kind = "struct"
			s.DataWords = set.Root.Struct.DataWordCount
			s.Pointers = set.Root.Struct.PointerCount
			s.Fields = len(set.Root.Struct.Fields)
		case schema.NodeEnum:
			s.Kind = "enum"
			s.Enumerants = len(set.Root.Enum.Enumerants)
		case schema.NodeInterface:
			s.Kind = "interface"
			s.Methods = len(set.Root.Interface.Methods)
		case schema.NodeConst:
			s.Kind = "const"
		case schema.NodeAnnotation:
			s.Kind = "annotation"
		}
		payload.Nodes = append(payload.Nodes, s)
	}
	for _, d := range result.Bag.Items() {
		switch d.Severity {
		case diag.SevError:
			payload.ErrorCount++
		case diag.SevWarning:
			payload.WarnCount++
		}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

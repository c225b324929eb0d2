package driver

import (
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"schemac/internal/decl"
	"schemac/internal/diag"
	"schemac/internal/project"
	"schemac/internal/resolver"
	"schemac/internal/schema"
	"schemac/internal/source"
	"schemac/internal/translator"
)

// fileScope is the shared lookup scope every top-level declaration in a
// project is registered under. Cross-file resolution is handled outside the
// translator itself, so one flat scope (rather than a per-file nested one)
// is sufficient for this driver's own reference resolver.
const fileScope schema.NodeID = 0

// unit is one source fixture's loaded state, threaded through the pipeline.
type unit struct {
	path   string
	rootID schema.NodeID
	digest project.Digest
	tree   *decl.Tree
	nt     *translator.NodeTranslator
	cached bool
	result schema.NodeSet
}

// Result is the outcome of translating one project's sources.
type Result struct {
	Paths     []string
	Sets      []schema.NodeSet
	Interners []*source.Interner
	Bag       *diag.Bag
}

// TranslateAll loads every source fixture named in m, translates them
// concurrently (one NodeTranslator per declaration, bounded by
// runtime.GOMAXPROCS workers via errgroup), and returns every finished
// NodeSet. Bootstrap translation runs fully in parallel; the finish pass
// (which may reference any other declaration's final schema) only starts
// once every unit's bootstrap has completed, since final schemas only
// become available once every translator has finished. cache may be nil to
// disable caching.
func TranslateAll(m *project.Manifest, cache *DiskCache, sink ProgressSink) (*Result, error) {
	paths := m.SourcePaths()
	table := resolver.NewTable()
	units := make([]*unit, len(paths))

	for i, path := range paths {
		start := time.Now()
		emitStage(sink, path, StageLoad, StatusWorking, nil, 0)
		tree, err := project.LoadDeclarationFixture(path)
		if err != nil {
			emitStage(sink, path, StageLoad, StatusError, err, time.Since(start))
			return nil, fmt.Errorf("load %q: %w", path, err)
		}
		digest, err := project.HashFile(path)
		if err != nil {
			return nil, fmt.Errorf("hash %q: %w", path, err)
		}
		u := &unit{path: path, rootID: schema.NodeID(i + 1), digest: digest, tree: tree}
		units[i] = u
		emitStage(sink, path, StageLoad, StatusDone, nil, time.Since(start))

		root := tree.Get(tree.Root)
		name := tree.Name(tree.Root)
		if name != "" {
			table.Declare(fileScope, name, declKindToResolverKind(root.Kind), u.rootID)
		}
	}

	for _, u := range units {
		if cache == nil {
			break
		}
		if set, ok, err := cache.Get(u.digest); err == nil && ok {
			u.cached = true
			u.result = set
			table.DeclareBootstrapSchema(u.rootID, set.Root)
			table.FinalizeSchema(u.rootID, set.Root)
			emitStage(sink, u.path, StageCache, StatusDone, nil, 0)
		}
	}

	bag := diag.NewBag(4096)
	bags := make([]*diag.Bag, len(units))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, u := range units {
		u := u
		if u.cached {
			continue
		}
		bags[i] = diag.NewBag(4096)
		reporter := diag.BagReporter{Bag: bags[i]}
		g.Go(func() error {
			start := time.Now()
			emitStage(sink, u.path, StageBootstrap, StatusWorking, nil, 0)
			res := resolver.NewScoped(table, fileScope)
			u.nt = translator.New(res, reporter, u.tree, u.tree.Root, u.rootID, m.Project.CompileAnnotations)
			emitStage(sink, u.path, StageBootstrap, StatusDone, nil, time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, u := range units {
		if u.cached || u.nt == nil {
			continue
		}
		set := u.nt.BootstrapNodeSet()
		table.DeclareBootstrapSchema(u.rootID, set.Root)
		table.FinalizeSchema(u.rootID, set.Root)
	}

	var g2 errgroup.Group
	g2.SetLimit(runtime.GOMAXPROCS(0))
	for _, u := range units {
		u := u
		if u.cached || u.nt == nil {
			continue
		}
		g2.Go(func() error {
			start := time.Now()
			emitStage(sink, u.path, StageFinish, StatusWorking, nil, 0)
			u.result = u.nt.Finish()
			emitStage(sink, u.path, StageFinish, StatusDone, nil, time.Since(start))
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}
	for _, b := range bags {
		if b != nil {
			bag.Merge(b)
		}
	}

	for _, u := range units {
		if u.cached {
			continue
		}
		table.FinalizeSchema(u.rootID, u.result.Root)
		if cache != nil {
			if err := cache.Put(u.digest, u.rootID, u.result); err != nil {
				return nil, fmt.Errorf("cache put %q: %w", u.path, err)
			}
		}
	}

	out := &Result{Bag: bag}
	for _, u := range units {
		out.Paths = append(out.Paths, u.path)
		out.Sets = append(out.Sets, u.result)
		out.Interners = append(out.Interners, u.tree.Interner)
	}
	return out, nil
}

func declKindToResolverKind(k decl.Kind) resolver.Kind {
	switch k {
	case decl.KindConst:
		return resolver.KindConst
	case decl.KindAnnotation:
		return resolver.KindAnnotation
	case decl.KindEnum:
		return resolver.KindEnum
	case decl.KindStruct:
		return resolver.KindStruct
	case decl.KindInterface:
		return resolver.KindInterface
	case decl.KindGroup:
		return resolver.KindGroup
	case decl.KindField:
		return resolver.KindField
	default:
		return resolver.KindInvalid
	}
}

package project

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"schemac/internal/decl"
	"schemac/internal/source"
)

// fixtureDecl is the TOML-decodable shape of one declaration-tree fixture
// file. It stands in for the upstream parser that would otherwise hand the
// translator a decl.Tree directly: this repo's tests and its
// `schemac translate` CLI both build one by decoding a fixture like this.
type fixtureDecl struct {
	Kind       string        `toml:"kind"`
	Name       string        `toml:"name"`
	HasOrdinal bool          `toml:"has_ordinal"`
	Ordinal    uint16        `toml:"ordinal"`
	Type       *fixtureType  `toml:"type"`
	Value      *fixtureValue `toml:"value"`
	Targets    []string      `toml:"targets"`
	Children   []fixtureDecl `toml:"children"`
}

type fixtureType struct {
	Name   string        `toml:"name"`
	Params []fixtureType `toml:"params"`
}

type fixtureValue struct {
	Kind        string            `toml:"kind"`
	Word        string            `toml:"word"`
	Ref         string            `toml:"ref"`
	PositiveInt uint64            `toml:"positive_int"`
	NegativeMag uint64            `toml:"negative_mag"`
	Float       float64           `toml:"float"`
	Str         string            `toml:"str"`
	Elems       []fixtureValue    `toml:"elems"`
	Fields      []fixtureFieldLit `toml:"fields"`
	Obsolete    bool              `toml:"obsolete_union_field"`
}

type fixtureFieldLit struct {
	Name  string       `toml:"name"`
	Value fixtureValue `toml:"value"`
}

// LoadDeclarationFixture decodes a TOML declaration-tree fixture from path
// and builds a decl.Tree whose Root is the single top-level declaration the
// file describes.
func LoadDeclarationFixture(path string) (*decl.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %q: %w", path, err)
	}
	var root fixtureDecl
	if _, err := toml.Decode(string(data), &root); err != nil {
		return nil, fmt.Errorf("decode fixture %q: %w", path, err)
	}
	tree := decl.NewTree()
	id, err := buildDecl(tree, &root)
	if err != nil {
		return nil, fmt.Errorf("fixture %q: %w", path, err)
	}
	tree.Root = id
	return tree, nil
}

var kindNames = map[string]decl.Kind{
	"file":       decl.KindFile,
	"const":      decl.KindConst,
	"annotation": decl.KindAnnotation,
	"enum":       decl.KindEnum,
	"enumerant":  decl.KindEnumerant,
	"struct":     decl.KindStruct,
	"field":      decl.KindField,
	"union":      decl.KindUnion,
	"group":      decl.KindGroup,
	"interface":  decl.KindInterface,
	"method":     decl.KindMethod,
	"using":      decl.KindUsing,
}

func buildDecl(tree *decl.Tree, f *fixtureDecl) (decl.ID, error) {
	kind, ok := kindNames[f.Kind]
	if !ok {
		return decl.NoID, fmt.Errorf("unknown declaration kind %q", f.Kind)
	}

	childIDs := make([]decl.ID, 0, len(f.Children))
	for i := range f.Children {
		childID, err := buildDecl(tree, &f.Children[i])
		if err != nil {
			return decl.NoID, err
		}
		childIDs = append(childIDs, childID)
	}

	d := decl.Declaration{
		Kind:       kind,
		HasOrdinal: f.HasOrdinal,
		Ordinal:    f.Ordinal,
		Children:   childIDs,
	}
	if f.Name != "" {
		d.Name = tree.Intern(f.Name)
	}
	if f.Type != nil {
		t := buildType(tree, f.Type)
		d.Type = &t
	}
	if f.Value != nil {
		v, err := buildValue(tree, f.Value)
		if err != nil {
			return decl.NoID, err
		}
		d.Value = &v
	}
	for _, tgt := range f.Targets {
		k, ok := kindNames[tgt]
		if !ok {
			return decl.NoID, fmt.Errorf("unknown annotation target %q", tgt)
		}
		d.Targets = append(d.Targets, k)
	}

	return tree.Add(d), nil
}

func buildType(tree *decl.Tree, f *fixtureType) decl.TypeExpr {
	params := make([]decl.TypeExpr, 0, len(f.Params))
	for i := range f.Params {
		params = append(params, buildType(tree, &f.Params[i]))
	}
	return decl.TypeExpr{
		Name:   decl.QualifiedName{Parts: splitQualified(tree, f.Name)},
		Params: params,
	}
}

func buildValue(tree *decl.Tree, f *fixtureValue) (decl.ValueExpr, error) {
	v := decl.ValueExpr{ObsoleteUnionField: f.Obsolete}
	switch f.Kind {
	case "bareword":
		v.Kind = decl.ValueBareWord
		v.Word = tree.Intern(f.Word)
	case "ref":
		v.Kind = decl.ValueQualifiedRef
		v.Ref = decl.QualifiedName{Parts: splitQualified(tree, f.Ref)}
	case "positive_int":
		v.Kind = decl.ValuePositiveInt
		v.PositiveInt = f.PositiveInt
	case "negative_int":
		v.Kind = decl.ValueNegativeInt
		v.NegativeMag = f.NegativeMag
	case "float":
		v.Kind = decl.ValueFloat
		v.Float = f.Float
	case "string":
		v.Kind = decl.ValueString
		v.Str = f.Str
	case "list":
		v.Kind = decl.ValueList
		for i := range f.Elems {
			elem, err := buildValue(tree, &f.Elems[i])
			if err != nil {
				return decl.ValueExpr{}, err
			}
			v.Elems = append(v.Elems, elem)
		}
	case "struct":
		v.Kind = decl.ValueStruct
		for _, fl := range f.Fields {
			fv, err := buildValue(tree, &fl.Value)
			if err != nil {
				return decl.ValueExpr{}, err
			}
			v.Fields = append(v.Fields, decl.StructFieldLit{
				Name:  tree.Intern(fl.Name),
				Value: fv,
			})
		}
	default:
		return decl.ValueExpr{}, fmt.Errorf("unknown value kind %q", f.Kind)
	}
	return v, nil
}

// splitQualified interns each dot-separated segment of a fixture's dotted
// name (e.g. "Outer.Inner") as its own source.StringID.
func splitQualified(tree *decl.Tree, name string) []source.StringID {
	if name == "" {
		return nil
	}
	parts := strings.Split(name, ".")
	ids := make([]source.StringID, 0, len(parts))
	for _, p := range parts {
		ids = append(ids, tree.Intern(p))
	}
	return ids
}

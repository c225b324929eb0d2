package translator

import (
	"math"

	"schemac/internal/decl"
	"schemac/internal/diag"
	"schemac/internal/resolver"
	"schemac/internal/schema"
)

// unfinishedValue is one composite-typed field whose literal could not be
// fully checked during the bootstrap pass (its target type's final schema,
// if any, was not yet available) and whose schema.Value must be recomputed
// once Finish runs against final schemas.
type unfinishedValue struct {
	member MemberID
	expr   *decl.ValueExpr
	target schema.Type
}

// ValueCompiler implements two-phase literal compilation: primitive-typed
// fields are compiled once, immediately, during traversal; pointer-typed
// (composite) fields get a well-formed default-default during bootstrap
// and are recompiled, against final schemas, by Finish.
type ValueCompiler struct {
	st      *StructTranslator
	pending []unfinishedValue
}

func newValueCompiler(st *StructTranslator) *ValueCompiler {
	return &ValueCompiler{st: st}
}

// CompileBootstrap compiles expr against target t for member id. Composite
// targets are queued for Finish and given a default-default in the
// meantime; every other target is compiled immediately.
func (vc *ValueCompiler) CompileBootstrap(id MemberID, expr *decl.ValueExpr, t schema.Type) schema.Value {
	if isCompositeValue(t.Kind) {
		vc.pending = append(vc.pending, unfinishedValue{member: id, expr: expr, target: t})
		return schema.DefaultDefault(t)
	}
	return vc.compileScalar(expr, t)
}

// Finish recompiles every queued composite value against final schemas and
// writes the result back into its owning MemberInfo's Default. Nested
// composite fields of a literal are compiled inline by compileComposite,
// so no further pending entries are queued while this runs.
func (vc *ValueCompiler) Finish() {
	for i := 0; i < len(vc.pending); i++ {
		uv := vc.pending[i]
		v := vc.compileComposite(uv.expr, uv.target)
		vc.st.member(uv.member).Default = v
	}
}

func isCompositeValue(k schema.TypeKind) bool {
	switch k {
	case schema.List, schema.Struct, schema.AnyPointer, schema.Data:
		return true
	default:
		return false
	}
}

// compileScalar compiles a non-pointer literal immediately: Void, Bool,
// the signed/unsigned integer widths, the float widths, Text, and Enum. A
// bareword or qualified reference to a constant is dereferenced first;
// the dereferenced value is checked against t directly rather than being
// re-expressed as syntax.
func (vc *ValueCompiler) compileScalar(expr *decl.ValueExpr, t schema.Type) schema.Value {
	if expr == nil {
		return schema.DefaultDefault(t)
	}
	if v, ok := vc.tryConstant(expr, t); ok {
		return v
	}
	switch t.Kind {
	case schema.Void:
		return schema.Value{Kind: schema.Void}
	case schema.Bool:
		return vc.compileBool(expr, t)
	case schema.Int8, schema.Int16, schema.Int32, schema.Int64:
		return vc.compileSignedInt(expr, t)
	case schema.UInt8, schema.UInt16, schema.UInt32, schema.UInt64:
		return vc.compileUnsignedInt(expr, t)
	case schema.Float32, schema.Float64:
		return vc.compileFloat(expr, t)
	case schema.Text:
		return vc.compileText(expr, t)
	case schema.Enum:
		return vc.compileEnumerant(expr, t)
	default:
		return schema.DefaultDefault(t)
	}
}

// tryConstant dereferences expr if it is a qualified reference, or an
// unqualified bareword that is not one of the reserved words and not an
// enumerant lookup, to another constant's already-compiled value. A bare,
// unqualified name that resolves to a constant still gets used, but is
// flagged: it reads as though it might be a local identifier, so callers
// are pushed toward spelling out the scope that actually defines it.
func (vc *ValueCompiler) tryConstant(expr *decl.ValueExpr, t schema.Type) (schema.Value, bool) {
	var parts []string
	switch expr.Kind {
	case decl.ValueQualifiedRef:
		for _, id := range expr.Ref.Parts {
			name, _ := vc.st.tree.Interner.Lookup(id)
			parts = append(parts, name)
		}
	case decl.ValueBareWord:
		word, _ := vc.st.tree.Interner.Lookup(expr.Word)
		switch word {
		case "void", "true", "false", "nan", "inf":
			return schema.Value{}, false
		}
		if t.Kind == schema.Enum {
			return schema.Value{}, false
		}
		parts = []string{word}
	default:
		return schema.Value{}, false
	}

	res, ok := vc.st.res.Resolve(parts)
	if !ok {
		if expr.Kind == decl.ValueBareWord {
			// Not a constant either; let the type-specific compiler report
			// the appropriate diagnostic for whatever this word was meant
			// to be.
			return schema.Value{}, false
		}
		diag.ReportError(vc.st.reporter, diag.ResUnresolvedName, expr.Span,
			"unresolved constant reference").Emit()
		return schema.DefaultDefault(t), true
	}
	if res.Kind != resolver.KindConst {
		if expr.Kind == decl.ValueBareWord {
			return schema.Value{}, false
		}
		diag.ReportError(vc.st.reporter, diag.ResWrongKind, expr.Span,
			"name does not refer to a constant").Emit()
		return schema.DefaultDefault(t), true
	}

	node, ok := vc.st.res.ResolveFinalSchema(res.ID)
	if !ok {
		// The constant's own schema is broken for reasons already reported
		// when it was compiled; don't pile a second diagnostic on top.
		return schema.DefaultDefault(t), true
	}
	if expr.Kind == decl.ValueBareWord {
		diag.ReportError(vc.st.reporter, diag.ResMustBeQualified, expr.Span,
			"constant reference must be qualified").Emit()
	}
	v := node.Const.Value
	if v.Kind != t.Kind {
		diag.ReportError(vc.st.reporter, diag.ValueTypeMismatch, expr.Span, "Type mismatch.").Emit()
		return schema.DefaultDefault(t), true
	}
	return v, true
}

func (vc *ValueCompiler) typeMismatch(expr *decl.ValueExpr, t schema.Type) schema.Value {
	diag.ReportError(vc.st.reporter, diag.ValueTypeMismatch, expr.Span, "Type mismatch.").Emit()
	return schema.DefaultDefault(t)
}

func (vc *ValueCompiler) compileBool(expr *decl.ValueExpr, t schema.Type) schema.Value {
	if expr.Kind != decl.ValueBareWord {
		return vc.typeMismatch(expr, t)
	}
	word, _ := vc.st.tree.Interner.Lookup(expr.Word)
	switch word {
	case "true":
		return schema.Value{Kind: schema.Bool, Bool: true}
	case "false":
		return schema.Value{Kind: schema.Bool, Bool: false}
	default:
		return vc.typeMismatch(expr, t)
	}
}

func (vc *ValueCompiler) compileSignedInt(expr *decl.ValueExpr, t schema.Type) schema.Value {
	bits := signedBits(t.Kind)
	switch expr.Kind {
	case decl.ValuePositiveInt:
		max := uint64(1)<<(bits-1) - 1
		if expr.PositiveInt > max {
			diag.ReportError(vc.st.reporter, diag.ValuePositiveOverflow, expr.Span,
				"integer literal does not fit the target width").Emit()
			return schema.DefaultDefault(t)
		}
		return schema.Value{Kind: t.Kind, Int: int64(expr.PositiveInt)}
	case decl.ValueNegativeInt:
		maxMag := uint64(1) << (bits - 1)
		if expr.NegativeMag > maxMag {
			diag.ReportError(vc.st.reporter, diag.ValueNegativeOverflow, expr.Span,
				"negative integer literal too large in magnitude").Emit()
			return schema.DefaultDefault(t)
		}
		if expr.NegativeMag == maxMag {
			return schema.Value{Kind: t.Kind, Int: math.MinInt64}
		}
		return schema.Value{Kind: t.Kind, Int: -int64(expr.NegativeMag)}
	default:
		return vc.typeMismatch(expr, t)
	}
}

func (vc *ValueCompiler) compileUnsignedInt(expr *decl.ValueExpr, t schema.Type) schema.Value {
	bits := unsignedBits(t.Kind)
	switch expr.Kind {
	case decl.ValuePositiveInt:
		var max uint64 = math.MaxUint64
		if bits < 64 {
			max = uint64(1)<<bits - 1
		}
		if expr.PositiveInt > max {
			diag.ReportError(vc.st.reporter, diag.ValuePositiveOverflow, expr.Span,
				"integer literal does not fit the target width").Emit()
			return schema.DefaultDefault(t)
		}
		return schema.Value{Kind: t.Kind, UInt: expr.PositiveInt}
	default:
		return vc.typeMismatch(expr, t)
	}
}

func (vc *ValueCompiler) compileFloat(expr *decl.ValueExpr, t schema.Type) schema.Value {
	switch expr.Kind {
	case decl.ValueFloat:
		return schema.Value{Kind: t.Kind, Float64: expr.Float}
	case decl.ValuePositiveInt:
		return schema.Value{Kind: t.Kind, Float64: float64(expr.PositiveInt)}
	case decl.ValueNegativeInt:
		return schema.Value{Kind: t.Kind, Float64: -float64(expr.NegativeMag)}
	case decl.ValueBareWord:
		word, _ := vc.st.tree.Interner.Lookup(expr.Word)
		switch word {
		case "nan":
			return schema.Value{Kind: t.Kind, Float64: math.NaN()}
		case "inf":
			return schema.Value{Kind: t.Kind, Float64: math.Inf(1)}
		}
	}
	return vc.typeMismatch(expr, t)
}

func (vc *ValueCompiler) compileText(expr *decl.ValueExpr, t schema.Type) schema.Value {
	if expr.Kind != decl.ValueString {
		return vc.typeMismatch(expr, t)
	}
	return schema.Value{Kind: schema.Text, Text: expr.Str}
}

// compileEnumerant resolves a bare-word literal against the enum's own
// scope: the resolver is expected to have the enum's enumerants declared
// as KindField entries keyed by name, with ID carrying the ordinal.
func (vc *ValueCompiler) compileEnumerant(expr *decl.ValueExpr, t schema.Type) schema.Value {
	if expr.Kind != decl.ValueBareWord {
		return vc.typeMismatch(expr, t)
	}
	word, _ := vc.st.tree.Interner.Lookup(expr.Word)
	res, ok := vc.st.res.Resolve([]string{word})
	if !ok || res.Kind != resolver.KindField {
		diag.ReportError(vc.st.reporter, diag.ResUnresolvedName, expr.Span,
			"unknown enumerant: "+word).Emit()
		return schema.DefaultDefault(t)
	}
	return schema.Value{Kind: schema.Enum, Enumerant: uint16(res.ID)}
}

func signedBits(k schema.TypeKind) int {
	switch k {
	case schema.Int8:
		return 8
	case schema.Int16:
		return 16
	case schema.Int32:
		return 32
	default:
		return 64
	}
}

func unsignedBits(k schema.TypeKind) int {
	switch k {
	case schema.UInt8:
		return 8
	case schema.UInt16:
		return 16
	case schema.UInt32:
		return 32
	default:
		return 64
	}
}

// compileComposite compiles List and Struct literals during Finish,
// recursing into nested composite fields inline rather than re-deferring
// them (Finish already runs against final schemas, so there is nothing
// further to wait for). A Data or AnyPointer target gets its
// default-default; the literal is not read.
func (vc *ValueCompiler) compileComposite(expr *decl.ValueExpr, t schema.Type) schema.Value {
	if expr == nil {
		return schema.DefaultDefault(t)
	}
	switch t.Kind {
	case schema.List:
		return vc.compileListValue(expr, t)
	case schema.Struct:
		return vc.compileStructValue(expr, t)
	default:
		return schema.DefaultDefault(t)
	}
}

func (vc *ValueCompiler) compileListValue(expr *decl.ValueExpr, t schema.Type) schema.Value {
	if expr.Kind != decl.ValueList {
		return vc.typeMismatch(expr, t)
	}
	elemType := schema.Primitive(schema.Void)
	if t.Elem != nil {
		elemType = *t.Elem
	}
	out := make([]schema.Value, 0, len(expr.Elems))
	for i := range expr.Elems {
		e := &expr.Elems[i]
		if isCompositeValue(elemType.Kind) {
			out = append(out, vc.compileComposite(e, elemType))
		} else {
			out = append(out, vc.compileScalar(e, elemType))
		}
	}
	return schema.Value{Kind: schema.List, List: out}
}

func (vc *ValueCompiler) compileStructValue(expr *decl.ValueExpr, t schema.Type) schema.Value {
	if expr.Kind != decl.ValueStruct {
		return vc.typeMismatch(expr, t)
	}
	st := vc.st
	node, ok := st.res.ResolveFinalSchema(t.NodeID)
	fieldType := map[string]schema.Type{}
	if ok {
		for _, f := range node.Struct.Fields {
			if f.Variant != schema.FieldRegular {
				continue
			}
			name, _ := st.tree.Interner.Lookup(f.Name)
			fieldType[name] = f.Type
		}
	}
	var fields []schema.FieldValue
	for _, lit := range expr.Fields {
		if expr.ObsoleteUnionField {
			diag.ReportError(st.reporter, diag.ValueObsoleteUnionLit, lit.Span,
				"obsolete union-field literal syntax").Emit()
			continue
		}
		name, _ := st.tree.Interner.Lookup(lit.Name)
		ft, known := fieldType[name]
		if ok && !known {
			diag.ReportError(st.reporter, diag.ValueUnknownField, lit.Span,
				"unknown field: "+name).Emit()
			continue
		}
		litExpr := lit.Value
		var v schema.Value
		if isCompositeValue(ft.Kind) {
			v = vc.compileComposite(&litExpr, ft)
		} else {
			v = vc.compileScalar(&litExpr, ft)
		}
		fields = append(fields, schema.FieldValue{Name: lit.Name, Value: v})
	}
	return schema.Value{Kind: schema.Struct, Struct: &schema.StructValue{NodeID: t.NodeID, Fields: fields}}
}

package translator

import (
	"strings"

	"schemac/internal/decl"
	"schemac/internal/diag"
	"schemac/internal/resolver"
	"schemac/internal/schema"
	"schemac/internal/source"
)

var builtinKinds = map[string]schema.TypeKind{
	"void":       schema.Void,
	"bool":       schema.Bool,
	"int8":       schema.Int8,
	"int16":      schema.Int16,
	"int32":      schema.Int32,
	"int64":      schema.Int64,
	"uint8":      schema.UInt8,
	"uint16":     schema.UInt16,
	"uint32":     schema.UInt32,
	"uint64":     schema.UInt64,
	"float32":    schema.Float32,
	"float64":    schema.Float64,
	"text":       schema.Text,
	"data":       schema.Data,
	"anyPointer": schema.AnyPointer,
}

// compileType resolves a type expression to a schema.Type: builtins and
// List(T) are recognized by name; anything else must resolve, through res,
// to an enum/struct/interface declaration and carries no parameters of its
// own. Any failure reports a diagnostic, defaults the
// result to Void, and returns ok=false.
func (st *StructTranslator) compileType(expr *decl.TypeExpr) (schema.Type, bool) {
	if expr == nil {
		return schema.Primitive(schema.Void), true
	}
	parts := st.qualifiedNameParts(expr.Name)
	if len(parts) == 0 {
		return schema.Primitive(schema.Void), false
	}

	if len(parts) == 1 {
		if kind, ok := builtinKinds[parts[0]]; ok {
			if len(expr.Params) != 0 {
				st.reportTypeError(diag.TypeUnsupportedParams, expr, "type does not take parameters")
				return schema.Primitive(schema.Void), false
			}
			return schema.Primitive(kind), true
		}
		if parts[0] == "List" {
			return st.compileListType(expr)
		}
	}

	res, ok := st.res.Resolve(parts)
	if !ok {
		st.reportTypeError(diag.TypeUnknownBase, expr, "unknown type: "+strings.Join(parts, "."))
		return schema.Primitive(schema.Void), false
	}
	if len(expr.Params) != 0 {
		st.reportTypeError(diag.TypeUnsupportedParams, expr, "only List takes parameters")
		return schema.Primitive(schema.Void), false
	}

	switch res.Kind {
	case resolver.KindEnum:
		return schema.EnumType(res.ID), true
	case resolver.KindStruct:
		return schema.StructType(res.ID), true
	case resolver.KindInterface:
		return schema.InterfaceType(res.ID), true
	default:
		st.reportTypeError(diag.ResWrongKind, expr, "name does not name a type")
		return schema.Primitive(schema.Void), false
	}
}

// compileListType handles List(T): exactly one parameter, and the element
// may not itself be anyPointer.
func (st *StructTranslator) compileListType(expr *decl.TypeExpr) (schema.Type, bool) {
	if len(expr.Params) != 1 {
		st.reportTypeError(diag.TypeListArity, expr, "List requires exactly one type parameter")
		return schema.Primitive(schema.Void), false
	}
	elem, ok := st.compileType(&expr.Params[0])
	if !ok {
		return schema.Primitive(schema.Void), false
	}
	if elem.Kind == schema.AnyPointer {
		st.reportTypeError(diag.TypeListOfAnyPointer, expr, "List(AnyPointer) is not supported")
		return schema.Primitive(schema.Void), false
	}
	return schema.ListOf(elem), true
}

func (st *StructTranslator) qualifiedNameParts(qn decl.QualifiedName) []string {
	parts := make([]string, 0, len(qn.Parts))
	for _, id := range qn.Parts {
		name, ok := st.tree.Interner.Lookup(id)
		if !ok {
			return nil
		}
		parts = append(parts, name)
	}
	return parts
}

func (st *StructTranslator) reportTypeError(code diag.Code, expr *decl.TypeExpr, msg string) {
	sp := source.Span{}
	if expr != nil {
		sp = expr.Span
	}
	diag.ReportError(st.reporter, code, sp, msg).Emit()
}

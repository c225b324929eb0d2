package translator

import (
	"schemac/internal/decl"
	"schemac/internal/diag"
	"schemac/internal/resolver"
	"schemac/internal/schema"
)

// kindTargetFlag maps the decl.Kind an annotation is attached to onto the
// schema.TargetFlags bit an annotation declaration must carry to legally
// target it.
func kindTargetFlag(k decl.Kind) schema.TargetFlags {
	switch k {
	case decl.KindFile:
		return schema.TargetFile
	case decl.KindConst:
		return schema.TargetConst
	case decl.KindEnum:
		return schema.TargetEnum
	case decl.KindEnumerant:
		return schema.TargetEnumerant
	case decl.KindStruct:
		return schema.TargetStruct
	case decl.KindField:
		return schema.TargetField
	case decl.KindUnion:
		return schema.TargetUnion
	case decl.KindGroup:
		return schema.TargetGroup
	case decl.KindInterface:
		return schema.TargetInterface
	case decl.KindMethod:
		return schema.TargetMethod
	case decl.KindAnnotation:
		return schema.TargetAnnotation
	default:
		return 0
	}
}

// compileAnnotationApplications resolves and compiles every annotation
// application on d, attaching targetKind so each can be checked against
// the annotation's declared Targets flags. When compileAnnotations is
// false the whole list compiles to nil, letting the caller skip
// annotation processing entirely.
func (st *StructTranslator) compileAnnotationApplications(d *decl.Declaration, targetKind decl.Kind) []schema.AnnotationValue {
	if !st.compileAnnotations || len(d.Annotations) == 0 {
		return nil
	}
	out := make([]schema.AnnotationValue, 0, len(d.Annotations))
	for _, app := range d.Annotations {
		parts := make([]string, 0, len(app.Name.Parts))
		for _, id := range app.Name.Parts {
			name, _ := st.tree.Interner.Lookup(id)
			parts = append(parts, name)
		}
		res, ok := st.res.Resolve(parts)
		if !ok || res.Kind != resolver.KindAnnotation {
			diag.ReportError(st.reporter, diag.AnnoNotAnnotation, app.Span,
				"name does not refer to an annotation").Emit()
			continue
		}
		node, ok := st.res.ResolveFinalSchema(res.ID)
		if !ok {
			diag.ReportError(st.reporter, diag.AnnoNotAnnotation, app.Span,
				"annotation declaration not yet available").Emit()
			continue
		}
		flag := kindTargetFlag(targetKind)
		if node.Annotation.Targets&flag == 0 {
			diag.ReportError(st.reporter, diag.AnnoWrongTarget, app.Span,
				"annotation does not target this declaration kind").Emit()
			continue
		}
		var value schema.Value
		if app.Value != nil {
			if isCompositeValue(node.Annotation.Type.Kind) {
				value = st.values.compileComposite(app.Value, node.Annotation.Type)
			} else {
				value = st.values.compileScalar(app.Value, node.Annotation.Type)
			}
		} else if node.Annotation.Type.Kind != schema.Void {
			diag.ReportError(st.reporter, diag.AnnoMissingValue, app.Span,
				"annotation requires a value").Emit()
			value = schema.DefaultDefault(node.Annotation.Type)
		}
		out = append(out, schema.AnnotationValue{AnnotationID: res.ID, Value: value})
	}
	return out
}

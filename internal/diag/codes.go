package diag

import (
	"fmt"
)

// Code is a compact, stable numeric identifier for a diagnostic kind.
type Code uint16

const (
	// UnknownCode is the zero value, used only as a sentinel.
	UnknownCode Code = 0

	// Declaration/project IO (1000s): reading fixtures and manifests.
	IOInfo          Code = 1000
	IOLoadFileError Code = 1001
	IODecodeError   Code = 1002

	// Duplicate/name-collision diagnostics (2000s).
	DupInfo            Code = 2000
	DupName            Code = 2001 // name already defined in this scope
	DupUnnamedUnion    Code = 2002 // an unnamed union is already defined in this scope
	DupOrdinal         Code = 2003 // ordinal used twice
	DupOrdinalOriginal Code = 2004 // note pointing at the first use of a duplicated ordinal
	DupOrdinalSkipped  Code = 2005 // gap in the ordinal sequence

	// Resolution / kind-use diagnostics (3000s).
	ResUnresolvedName  Code = 3000 // qualified name does not resolve
	ResWrongKind       Code = 3001 // name resolves, but not to the expected declaration kind
	ResMustBeQualified Code = 3002 // unqualified const reference defined in an outer scope

	// Type-expression diagnostics (4000s).
	TypeUnknownBase       Code = 4000
	TypeListArity         Code = 4001 // List(T) requires exactly one parameter
	TypeListOfAnyPointer  Code = 4002 // List(AnyPointer) is not supported
	TypeUnsupportedParams Code = 4003 // a non-List user type was given parameters

	// Value-compilation diagnostics (5000s).
	ValueTypeMismatch     Code = 5000
	ValueNegativeOverflow Code = 5001 // negative int literal too large in magnitude
	ValuePositiveOverflow Code = 5002 // positive int literal does not fit target width
	ValueUnknownField     Code = 5003 // struct literal assigns an unknown field name
	ValueObsoleteUnionLit Code = 5004 // obsolete "union field" literal syntax

	// Union/group structural diagnostics (6000s).
	UnionNoMembers       Code = 6000 // union declared with fewer than two members
	UnionNestedUnion     Code = 6001 // union directly nested inside another union
	UnionOrdinalConflict Code = 6002 // union's ordinal collides with an already-allocated discriminant
	UnionOrdinalTooLate  Code = 6003 // union ordinal absorbs more than one pre-existing field

	// Annotation diagnostics (7000s).
	AnnoWrongTarget   Code = 7000 // annotation applied to a declaration kind it does not target
	AnnoMissingValue  Code = 7001 // non-void annotation applied without a value
	AnnoNotAnnotation Code = 7002 // the resolved name is not an annotation declaration
	AnnoValueMismatch Code = 7003 // annotation value does not match the declared annotation type

	// Observability (8000s): CLI/driver-level informational notes.
	ObsInfo      Code = 8000
	ObsTimings   Code = 8001
	ObsCacheHit  Code = 8002
	ObsCacheMiss Code = 8003
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	IOInfo:                "I/O information",
	IOLoadFileError:       "Failed to load fixture or manifest",
	IODecodeError:         "Failed to decode declaration fixture",
	DupInfo:               "Name/ordinal information",
	DupName:               "Duplicate name in scope",
	DupUnnamedUnion:       "An unnamed union is already defined in this scope",
	DupOrdinal:            "Duplicate ordinal",
	DupOrdinalOriginal:    "Prior declaration of this ordinal",
	DupOrdinalSkipped:     "Skipped ordinal",
	ResUnresolvedName:     "Unresolved name",
	ResWrongKind:          "Name resolves to the wrong declaration kind",
	ResMustBeQualified:    "Constant reference must be qualified",
	TypeUnknownBase:       "Unknown type name",
	TypeListArity:         "List requires exactly one type parameter",
	TypeListOfAnyPointer:  "List(AnyPointer) is not supported",
	TypeUnsupportedParams: "Type does not accept parameters",
	ValueTypeMismatch:     "Type mismatch.",
	ValueNegativeOverflow: "Integer is too big to be negative.",
	ValuePositiveOverflow: "Integer value out of range for target type.",
	ValueUnknownField:     "Unknown field in struct literal",
	ValueObsoleteUnionLit: "Union literal syntax is obsolete",
	UnionNoMembers:        "Union must have at least two members",
	UnionNestedUnion:      "Unions may not be nested directly inside a union",
	UnionOrdinalConflict:  "Union discriminant already allocated",
	UnionOrdinalTooLate:   "Union ordinal may absorb at most one pre-existing field",
	AnnoWrongTarget:       "Annotation is not declared to target this kind",
	AnnoMissingValue:      "Annotation requires a value",
	AnnoNotAnnotation:     "Target of annotation application is not an annotation",
	AnnoValueMismatch:     "Annotation value does not match its declared type",
	ObsInfo:               "Observability information",
	ObsTimings:            "Pipeline timings",
	ObsCacheHit:           "Disk cache hit",
	ObsCacheMiss:          "Disk cache miss",
}

// ID returns a stable prefixed identifier, e.g. "RES3000".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DUP%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RES%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("VAL%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("UNI%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("ANN%04d", ic)
	case ic >= 8000 && ic < 9000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

// Title returns the human-readable description registered for the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

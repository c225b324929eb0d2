package schema

import "schemac/internal/source"

// NodeID is the stable 64-bit identifier of a schema node.
type NodeID uint64

const NoNodeID NodeID = 0

// NodeKind tags the body variant a Node carries.
type NodeKind uint8

const (
	NodeInvalid NodeKind = iota
	NodeFile
	NodeStruct
	NodeEnum
	NodeInterface
	NodeAnnotation
	NodeConst
)

// PreferredListEncoding is the densest wire encoding usable when a struct
// is used as a list element.
type PreferredListEncoding uint8

const (
	EncodingEmpty PreferredListEncoding = iota
	EncodingBit
	EncodingByte
	EncodingTwoBytes
	EncodingFourBytes
	EncodingEightBytes
	EncodingPointer
	EncodingInlineComposite
)

func (e PreferredListEncoding) String() string {
	switch e {
	case EncodingEmpty:
		return "empty"
	case EncodingBit:
		return "bit"
	case EncodingByte:
		return "byte"
	case EncodingTwoBytes:
		return "two_bytes"
	case EncodingFourBytes:
		return "four_bytes"
	case EncodingEightBytes:
		return "eight_bytes"
	case EncodingPointer:
		return "pointer"
	case EncodingInlineComposite:
		return "inline_composite"
	default:
		return "invalid"
	}
}

// TargetFlags is a bitmask of declaration kinds an annotation may legally
// be applied to.
type TargetFlags uint16

const (
	TargetFile TargetFlags = 1 << iota
	TargetConst
	TargetEnum
	TargetEnumerant
	TargetStruct
	TargetField
	TargetUnion
	TargetGroup
	TargetInterface
	TargetMethod
	TargetParam
	TargetAnnotation
)

// AnnotationValue is one annotation applied to an emitted node.
type AnnotationValue struct {
	AnnotationID NodeID
	Value        Value
}

// FieldVariant tags whether a Field is a regular data/pointer field or a
// reference to a nested group node.
type FieldVariant uint8

const (
	FieldRegular FieldVariant = iota
	FieldGroup
)

// Field is one member of a struct body's field list.
type Field struct {
	Name         source.StringID
	CodeOrder    uint16
	Discriminant uint16
	Ordinal      uint16

	Variant FieldVariant

	// Regular variant.
	Type    Type
	Offset  uint32 // bit offset for data kinds, pointer index for pointer kinds
	Default Value

	// Group variant.
	GroupNodeID NodeID
}

// NoDiscriminantOffset marks a struct with no union at all.
const NoDiscriminantOffset uint16 = 0xFFFF

// StructBody is the body of a struct (or group) node.
type StructBody struct {
	DataWordCount      uint16
	PointerCount       uint16
	PreferredEncoding  PreferredListEncoding
	DiscriminantCount  uint16
	DiscriminantOffset uint16 // NoDiscriminantOffset if the struct has no union
	Fields             []Field
	IsGroup            bool
}

// Enumerant is one member of an enum body.
type Enumerant struct {
	Name      source.StringID
	Ordinal   uint16
	CodeOrder uint16
}

// EnumBody is the body of an enum node.
type EnumBody struct {
	Enumerants []Enumerant
}

// Method is one member of an interface body.
type Method struct {
	Name           source.StringID
	Ordinal        uint16
	CodeOrder      uint16
	ParamStructID  NodeID
	ResultStructID NodeID
}

// InterfaceBody is the body of an interface node.
type InterfaceBody struct {
	Methods []Method
}

// AnnotationBody is the body of an annotation declaration node.
type AnnotationBody struct {
	Type    Type
	Targets TargetFlags
}

// ConstBody is the body of a const declaration node.
type ConstBody struct {
	Type  Type
	Value Value
}

// Node is a tagged schema record: a file, struct, enum, interface,
// annotation, or const.
type Node struct {
	ID          NodeID
	DisplayName source.StringID
	PrefixLen   uint32
	ScopeID     NodeID
	Annotations []AnnotationValue

	Kind NodeKind

	Struct      StructBody
	Enum        EnumBody
	Interface   InterfaceBody
	Annotation  AnnotationBody
	Const       ConstBody
}

// NodeSet is the result of translating one top-level declaration: the
// root node plus every group sub-node generated while laying it out.
type NodeSet struct {
	Root   Node
	Groups []Node
}

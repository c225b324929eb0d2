package schema

// TypeKind tags the shape of a Type or Value.
type TypeKind uint8

const (
	Void TypeKind = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float32
	Float64
	Text
	Data
	List
	Enum
	Struct
	Interface
	AnyPointer
)

func (k TypeKind) String() string {
	switch k {
	case Void:
		return "void"
	case Bool:
		return "bool"
	case Int8:
		return "i8"
	case Int16:
		return "i16"
	case Int32:
		return "i32"
	case Int64:
		return "i64"
	case UInt8:
		return "u8"
	case UInt16:
		return "u16"
	case UInt32:
		return "u32"
	case UInt64:
		return "u64"
	case Float32:
		return "f32"
	case Float64:
		return "f64"
	case Text:
		return "text"
	case Data:
		return "data"
	case List:
		return "list"
	case Enum:
		return "enum"
	case Struct:
		return "struct"
	case Interface:
		return "interface"
	case AnyPointer:
		return "anyPointer"
	default:
		return "invalid"
	}
}

// IsPointer reports whether values of this kind occupy a pointer slot
// rather than bits within the data section.
func (k TypeKind) IsPointer() bool {
	switch k {
	case Text, Data, List, Struct, Interface, AnyPointer:
		return true
	default:
		return false
	}
}

// LgSize returns the data-section size class (log2 of bit width) of a
// non-pointer primitive kind: bool=0 (1 bit), i8/u8=3 (8 bits), i16/u16/
// enum=4 (16 bits), i32/u32/f32=5 (32 bits), i64/u64/f64=6 (64 bits).
// Pointer kinds and void return 0.
func (k TypeKind) LgSize() uint8 {
	switch k {
	case Bool:
		return 0
	case Int8, UInt8:
		return 3
	case Int16, UInt16, Enum:
		return 4
	case Int32, UInt32, Float32:
		return 5
	case Int64, UInt64, Float64:
		return 6
	default:
		return 0
	}
}

// Type is a tagged union over the schema type kinds. Elem is populated
// only for List; NodeID is populated only for Enum/Struct/Interface.
type Type struct {
	Kind   TypeKind
	Elem   *Type
	NodeID NodeID
}

func (t Type) String() string {
	if t.Kind == List && t.Elem != nil {
		return "List(" + t.Elem.String() + ")"
	}
	return t.Kind.String()
}

// Primitive is the convenience constructor for primitive types (Void,
// Bool, the sized numeric kinds, Text, Data, AnyPointer) that carry no
// auxiliary data.
func Primitive(k TypeKind) Type { return Type{Kind: k} }

func ListOf(elem Type) Type { return Type{Kind: List, Elem: &elem} }

func EnumType(id NodeID) Type { return Type{Kind: Enum, NodeID: id} }

func StructType(id NodeID) Type { return Type{Kind: Struct, NodeID: id} }

func InterfaceType(id NodeID) Type { return Type{Kind: Interface, NodeID: id} }

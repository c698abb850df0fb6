package codec

import "fmt"

// Type tags. Every encoded value starts with one of these bytes. The values
// are part of the wire format and never change.
const (
	TagZero        byte = 0   // zero / false
	TagOne         byte = 1   // one / true
	TagCompactMax  byte = 127 // 2..127 are compact unsigned literals
	TagNone        byte = 128 // Option None
	TagSome        byte = 129 // Option Some, inner value follows
	TagU8          byte = 131 // 1 byte, value-128
	TagU16         byte = 132 // 2 bytes LE
	TagU32         byte = 133 // 4 bytes LE
	TagU64         byte = 134 // 8 bytes LE
	TagU128        byte = 135 // 16 bytes LE
	TagNegative    byte = 136 // inverted unsigned integer follows
	TagF32         byte = 137
	TagF64         byte = 138
	TagStringBase  byte = 139 // 139..179, length = tag-139
	TagStringLong  byte = 180 // varint length follows
	TagBinary      byte = 181
	TagStructUnit  byte = 182
	TagStructNamed byte = 183
	TagStructTuple byte = 184
	TagEnumUnit    byte = 185
	TagEnumNamed   byte = 186
	TagEnumTuple   byte = 187
	TagSeqBase     byte = 188 // 188..193, length = tag-188
	TagSeqLong     byte = 194 // varint length follows
	TagTuple       byte = 195
	TagMap         byte = 196
	TagDateTime    byte = 197
	TagDate        byte = 198
	TagTime        byte = 199
	TagDecimal     byte = 200
	TagUUID        byte = 201
	TagJSONNull    byte = 202
	TagJSONBool    byte = 203
	TagJSONNumber  byte = 204
	TagJSONString  byte = 205
	TagJSONArray   byte = 206
	TagJSONObject  byte = 207
)

const (
	// MaxShortString is the longest string that fits in the tag byte.
	MaxShortString = int(TagStringLong - TagStringBase - 1)
	// MaxShortSeq is the longest sequence that fits in the tag byte.
	MaxShortSeq = int(TagSeqLong - TagSeqBase - 1)
)

// JSON number sub-markers written after TagJSONNumber.
const (
	JSONNumberUint  byte = 0
	JSONNumberInt   byte = 1
	JSONNumberFloat byte = 2
)

// IsShortString reports whether tag carries a string length inline.
func IsShortString(tag byte) bool {
	return tag >= TagStringBase && tag < TagStringLong
}

// IsShortSeq reports whether tag carries a sequence length inline.
func IsShortSeq(tag byte) bool {
	return tag >= TagSeqBase && tag < TagSeqLong
}

// IsUnsignedTag reports whether tag starts an unsigned integer.
func IsUnsignedTag(tag byte) bool {
	return tag <= TagCompactMax || (tag >= TagU8 && tag <= TagU128)
}

// TagName returns a human-readable description of tag for diagnostics.
func TagName(tag byte) string {
	switch {
	case tag == TagZero:
		return "Zero"
	case tag == TagOne:
		return "One"
	case tag <= TagCompactMax:
		return fmt.Sprintf("Compact(%d)", tag)
	case IsShortString(tag):
		return fmt.Sprintf("String(%d)", tag-TagStringBase)
	case IsShortSeq(tag):
		return fmt.Sprintf("Seq(%d)", tag-TagSeqBase)
	}
	switch tag {
	case TagNone:
		return "None"
	case TagSome:
		return "Some"
	case TagU8:
		return "U8"
	case TagU16:
		return "U16"
	case TagU32:
		return "U32"
	case TagU64:
		return "U64"
	case TagU128:
		return "U128"
	case TagNegative:
		return "Negative"
	case TagF32:
		return "F32"
	case TagF64:
		return "F64"
	case TagStringLong:
		return "String"
	case TagBinary:
		return "Binary"
	case TagStructUnit:
		return "StructUnit"
	case TagStructNamed:
		return "StructNamed"
	case TagStructTuple:
		return "StructTuple"
	case TagEnumUnit:
		return "EnumUnit"
	case TagEnumNamed:
		return "EnumNamed"
	case TagEnumTuple:
		return "EnumTuple"
	case TagSeqLong:
		return "Seq"
	case TagTuple:
		return "Tuple"
	case TagMap:
		return "Map"
	case TagDateTime:
		return "DateTime"
	case TagDate:
		return "Date"
	case TagTime:
		return "Time"
	case TagDecimal:
		return "Decimal"
	case TagUUID:
		return "UUID"
	case TagJSONNull:
		return "JSONNull"
	case TagJSONBool:
		return "JSONBool"
	case TagJSONNumber:
		return "JSONNumber"
	case TagJSONString:
		return "JSONString"
	case TagJSONArray:
		return "JSONArray"
	case TagJSONObject:
		return "JSONObject"
	default:
		return fmt.Sprintf("Unknown(%d)", tag)
	}
}

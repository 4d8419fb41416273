package legis

// BillType identifies the chamber and form of a legislative document.
// The set is a fixed code table: XML source documents carry the code in
// their type attribute, and the same code doubles as the URL slug.
type BillType int

// Bill types in display order.
const (
	BillTypeHR BillType = iota + 1
	BillTypeS
	BillTypeHRes
	BillTypeSRes
	BillTypeHJRes
	BillTypeSJRes
	BillTypeHConRes
	BillTypeSConRes
)

// billTypeInfo is one row of the fixed bill type code table.
type billTypeInfo struct {
	typ   BillType
	code  string
	label string
}

var billTypes = []billTypeInfo{
	{BillTypeHR, "hr", "H.R."},
	{BillTypeS, "s", "S."},
	{BillTypeHRes, "hres", "H.Res."},
	{BillTypeSRes, "sres", "S.Res."},
	{BillTypeHJRes, "hjres", "H.J.Res."},
	{BillTypeSJRes, "sjres", "S.J.Res."},
	{BillTypeHConRes, "hconres", "H.Con.Res."},
	{BillTypeSConRes, "sconres", "S.Con.Res."},
}

var billTypesByCode = func() map[string]BillType {
	m := make(map[string]BillType, len(billTypes))
	for _, info := range billTypes {
		m[info.code] = info.typ
	}
	return m
}()

// BillTypeByCode resolves a bill type from its XML code ("hr", "s", ...).
// The second return value reports whether the code is known.
func BillTypeByCode(code string) (BillType, bool) {
	typ, ok := billTypesByCode[code]
	return typ, ok
}

// BillTypes returns all bill types in display order.
func BillTypes() []BillType {
	types := make([]BillType, 0, len(billTypes))
	for _, info := range billTypes {
		types = append(types, info.typ)
	}
	return types
}

// Code returns the XML code and URL slug for the bill type.
func (bt BillType) Code() string {
	for _, info := range billTypes {
		if info.typ == bt {
			return info.code
		}
	}
	return ""
}

// Label returns the display label, e.g. "H.R." for BillTypeHR.
func (bt BillType) Label() string {
	for _, info := range billTypes {
		if info.typ == bt {
			return info.label
		}
	}
	return ""
}

// String implements fmt.Stringer.
func (bt BillType) String() string {
	return bt.Code()
}

// Valid reports whether the bill type is part of the code table.
func (bt BillType) Valid() bool {
	return bt.Code() != ""
}

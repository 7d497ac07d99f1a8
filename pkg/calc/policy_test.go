package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTokenizedName(t *testing.T) {
	testCases := []struct {
		name   string
		family Family
		id     TypeID
		want   bool
	}{
		{"83+ program is plain", TI83P, TI83Program, false},
		{"83+ asm is plain", TI83P, TI83ProtProgram, false},
		{"83+ appvar is plain", TI83P, TI83PAppVar, false},
		{"83+ list is tokenized", TI83P, TI83List, true},
		{"83+ string is tokenized", TI83P, TI83String, true},
		{"82 protected program is plain", TI82, TI83ProtProgram, false},
		{"83 real is tokenized", TI83, TI83Real, true},
		{"84+ picture is tokenized", TI84P, TI83Picture, true},
		{"73 appvar is plain", TI73, TI73AppVar, false},
		{"73 0x15 is tokenized", TI73, TI83PAppVar, true},
		{"73 asm is plain", TI73, TI83ProtProgram, false},
		{"85 never tokenized", TI85, TI85List, false},
		{"86 never tokenized", TI86, TI85Program, false},
		{"89 never tokenized", TI89, TI89List, false},
		{"v200 never tokenized", V200, TI89Program, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsTokenizedName(tc.family, tc.id))
		})
	}
}

func TestHasLengthPrefix(t *testing.T) {
	want := map[Family][]TypeID{
		TI85:  {TI85Equ, TI85String, TI85Picture, TI85Program},
		TI86:  {TI85Equ, TI85String, TI85Picture, TI85Program},
		TI82:  {TI83Equ, TI83String, TI83Program, TI83ProtProgram, TI83Picture},
		TI83:  {TI83Equ, TI83String, TI83Program, TI83ProtProgram, TI83Picture},
		TI73:  {TI83Equ, TI83String, TI83Program, TI83ProtProgram, TI83Picture, TI73AppVar},
		TI83P: {TI83Equ, TI83String, TI83Program, TI83ProtProgram, TI83Picture, TI83PAppVar},
		TI84P: {TI83Equ, TI83String, TI83Program, TI83ProtProgram, TI83Picture, TI83PAppVar},
		TI89:  {},
		TI92:  {},
		TI92P: {},
		V200:  {},
	}

	for _, f := range ResolutionOrder {
		allowed := setOf(want[f]...)
		for id := 0; id < 0x40; id++ {
			assert.Equal(t, allowed.has(TypeID(id)), HasLengthPrefix(f, TypeID(id)),
				"%s type 0x%02x", f, id)
		}
	}
	assert.False(t, HasLengthPrefix(FamilyUnknown, TI83Program))
}

func TestProtectedVariant(t *testing.T) {
	for _, f := range []Family{TI73, TI82, TI83, TI83P, TI84P} {
		assert.Equal(t, TI83ProtProgram, ProtectedVariant(f, TI83Program), f.String())
		// Idempotent on its own output.
		assert.Equal(t, TI83ProtProgram, ProtectedVariant(f, ProtectedVariant(f, TI83Program)), f.String())
		assert.Equal(t, TI83List, ProtectedVariant(f, TI83List), f.String())
	}
	for _, f := range []Family{TI85, TI86, TI89, TI92, TI92P, V200} {
		for _, id := range Types(f) {
			assert.Equal(t, id, ProtectedVariant(f, id), "%s type 0x%02x", f, id)
		}
	}
}

func TestComplexVariant(t *testing.T) {
	testCases := []struct {
		name   string
		family Family
		in     TypeID
		want   TypeID
	}{
		{"89 list", TI89, TI89List, TI89List + 1},
		{"92+ matrix", TI92P, TI89Matrix, TI89Matrix + 1},
		{"89 expr unchanged", TI89, TI89Expr, TI89Expr},
		{"85 real", TI85, TI85Real, TI85Cplx},
		{"85 vector", TI85, TI85Vector, TI85CVector},
		{"86 list", TI86, TI85List, TI85CList},
		{"86 matrix", TI86, TI85Matrix, TI85CMatrix},
		{"86 constant", TI86, TI85Const, TI85CConst},
		{"85 program unchanged", TI85, TI85Program, TI85Program},
		{"82 has no complex", TI82, TI83Real, TI83Real},
		{"73 has no complex", TI73, TI83List, TI83List},
		{"83 real", TI83, TI83Real, TI83Complex},
		{"83+ list", TI83P, TI83List, TI83CList},
		{"84+ matrix unchanged", TI84P, TI83Matrix, TI83Matrix},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComplexVariant(tc.family, tc.in))
		})
	}
}

func TestComplexVariantNotIdempotent(t *testing.T) {
	// A second application lands on an id nobody registers, which is why
	// ApplyAttributes only complexifies once.
	twice := ComplexVariant(TI85, ComplexVariant(TI85, TI85List))
	assert.Equal(t, TI85CList, twice, "85 complex list is outside the set")

	once := ComplexVariant(TI89, TI89List)
	assert.Equal(t, "", ExtensionFor(TI89, once))
}

func TestApplyAttributesOrder(t *testing.T) {
	assert.Equal(t, TI83ProtProgram, ApplyAttributes(TI83P, TI83Program, true, false))
	assert.Equal(t, TI83CList, ApplyAttributes(TI83P, TI83List, false, true))
	// Protect first: the protected program is not in the complex set.
	assert.Equal(t, TI83ProtProgram, ApplyAttributes(TI83P, TI83Program, true, true))
	assert.Equal(t, TI83Complex, ApplyAttributes(TI83, TI83Real, true, true))
	assert.Equal(t, TI85Program, ApplyAttributes(TI85, TI85Program, true, true))
	assert.Equal(t, TI83Program, ApplyAttributes(TI83P, TI83Program, false, false))
}

func TestEveryFamilyHasPolicy(t *testing.T) {
	for _, f := range ResolutionOrder {
		assert.NotNil(t, typeTable(f), f.String())
		if f.IsTI9x() {
			assert.False(t, IsTokenizedName(f, TI89Program))
		}
	}
}

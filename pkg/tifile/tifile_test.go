package tifile

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/utz82/tipack/pkg/calc"
)

func testLogger(name string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  name,
		Level: hclog.Trace,
	})
}

func TestNewVarEntryTruncates(t *testing.T) {
	e := NewVarEntry("ABCDEFGHIJK", calc.TI83Program, AttrNone, []byte{1, 2, 3})
	assert.Equal(t, "ABCDEFGH", e.Name)
	assert.Equal(t, 3, e.Size)

	c := NewContent(calc.TI83P, strings.Repeat("x", 50), e)
	assert.Len(t, c.Comment, CommentMax)
}

func TestEncode8xLayout(t *testing.T) {
	data := []byte{0x03, 0x00, 0x01, 0x02, 0x03}
	c := NewContent(calc.TI83P, "hi", NewVarEntry("PROG", calc.TI83Program, AttrArchived, data))

	out, err := Encode(c)
	require.NoError(t, err)

	assert.Equal(t, "**TI83F*", string(out[:8]))
	assert.Equal(t, []byte{0x1A, 0x0A, 0x00}, out[8:11])
	assert.Equal(t, "hi", string(bytes.TrimRight(out[11:53], "\x00")))

	sectionLen := int(binary.LittleEndian.Uint16(out[53:55]))
	assert.Equal(t, 2+0x0D+2+len(data), sectionLen)
	require.Len(t, out, 55+sectionLen+2)

	section := out[55 : 55+sectionLen]
	assert.Equal(t, uint16(0x0D), binary.LittleEndian.Uint16(section[0:2]))
	assert.Equal(t, uint16(len(data)), binary.LittleEndian.Uint16(section[2:4]))
	assert.Equal(t, byte(calc.TI83Program), section[4])
	assert.Equal(t, "PROG\x00\x00\x00\x00", string(section[5:13]))
	assert.Equal(t, byte(0x80), section[14], "archived flag")
	assert.Equal(t, data, section[17:])

	assert.Equal(t, Checksum(section), binary.LittleEndian.Uint16(out[len(out)-2:]))
	assert.Equal(t, Checksum(section), c.Checksum)
}

func TestEncode83ShortHeader(t *testing.T) {
	c := NewContent(calc.TI83, "", NewVarEntry("A", calc.TI83Real, AttrNone, make([]byte, 9)))
	out, err := Encode(c)
	require.NoError(t, err)
	assert.Equal(t, "**TI83**", string(out[:8]))
	assert.Equal(t, uint16(0x0B), binary.LittleEndian.Uint16(out[55:57]))
	assert.Len(t, out, 55+2+0x0B+2+9+2)
}

func TestEncode85And86Names(t *testing.T) {
	data := []byte{0x02, 0x00, 'h', 'i'}

	c85 := NewContent(calc.TI85, "", NewVarEntry("STR", calc.TI85String, AttrNone, data))
	out, err := Encode(c85)
	require.NoError(t, err)
	section := out[55 : len(out)-2]
	assert.Equal(t, uint16(4+3), binary.LittleEndian.Uint16(section[0:2]))
	assert.Equal(t, byte(3), section[5])
	assert.Equal(t, "STR", string(section[6:9]))
	assert.Equal(t, data, section[11:])

	c86 := NewContent(calc.TI86, "", NewVarEntry("STR", calc.TI85String, AttrNone, data))
	out, err = Encode(c86)
	require.NoError(t, err)
	section = out[55 : len(out)-2]
	assert.Equal(t, uint16(0x0C), binary.LittleEndian.Uint16(section[0:2]))
	assert.Equal(t, byte(3), section[5])
	assert.Equal(t, "STR     ", string(section[6:14]))
	assert.Equal(t, data, section[16:])
}

func TestEncode9xLayout(t *testing.T) {
	data := []byte{0x00, 0x04, 0xE9, 0x12, 0x34, 0xDC}
	c := NewContent(calc.TI89, "comment", NewVarEntry("MYTEXT", calc.TI89Text, AttrArchived, data))

	out, err := Encode(c)
	require.NoError(t, err)
	assert.Equal(t, "**TI89**", string(out[:8]))
	assert.Equal(t, "main", string(bytes.TrimRight(out[10:18], "\x00")))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(out[58:60]))

	offset := binary.LittleEndian.Uint32(out[60:64])
	assert.Equal(t, uint32(0x52), offset)
	assert.Equal(t, "MYTEXT", string(bytes.TrimRight(out[64:72], "\x00")))
	assert.Equal(t, byte(calc.TI89Text), out[72])
	assert.Equal(t, byte(0x03), out[73])

	fileSize := binary.LittleEndian.Uint32(out[76:80])
	assert.Equal(t, uint32(len(out)), fileSize)
	assert.Equal(t, []byte{0xA5, 0x5A}, out[80:82])
	assert.Equal(t, data, out[offset+4:len(out)-2])
}

func TestRoundTrip(t *testing.T) {
	logger := testLogger("tifile_test")

	testCases := []struct {
		name   string
		family calc.Family
		id     calc.TypeID
		attr   uint8
		vname  string
	}{
		{"73 appvar", calc.TI73, calc.TI73AppVar, AttrArchived, "DATA"},
		{"82 program", calc.TI82, calc.TI83Program, AttrNone, "GAME"},
		{"83 list", calc.TI83, calc.TI83List, AttrNone, "\x5D\x00"},
		{"83+ appvar", calc.TI83P, calc.TI83PAppVar, AttrArchived, "SAVE"},
		{"84+ asm", calc.TI84P, calc.TI83ProtProgram, AttrNone, "ASMPRGM"},
		{"85 string", calc.TI85, calc.TI85String, AttrNone, "S1"},
		{"86 program", calc.TI86, calc.TI85Program, AttrNone, "PROGRAM8"},
		{"89 text", calc.TI89, calc.TI89Text, AttrArchived, "notes"},
		{"92 program", calc.TI92, calc.TI89Program, AttrNone, "prog"},
		{"v200 other", calc.V200, calc.TI89Other, AttrArchived, "blob"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data := []byte{0x05, 0x00, 0xDE, 0xAD, 0x00, 0xBE, 0xEF}
			c := NewContent(tc.family, "Created by tests", NewVarEntry(tc.vname, tc.id, tc.attr, data))

			var buf bytes.Buffer
			require.NoError(t, Write(&buf, c))

			got, err := Read(&buf)
			require.NoError(t, err)
			Display(logger, got)

			assert.Equal(t, "Created by tests", got.Comment)
			assert.Equal(t, tc.vname, got.Entry.Name)
			assert.Equal(t, tc.id, got.Entry.Type)
			assert.Equal(t, tc.attr, got.Entry.Attr)
			assert.Equal(t, data, got.Entry.Data)
			assert.Equal(t, len(data), got.Entry.Size)
			assert.Equal(t, c.Checksum, got.Checksum)
			assert.Equal(t, Signature(tc.family), Signature(got.Family))
		})
	}
}

func TestArchiveRejected(t *testing.T) {
	for _, f := range []calc.Family{calc.TI82, calc.TI83, calc.TI85, calc.TI86, calc.TI92} {
		c := NewContent(f, "", NewVarEntry("X", 0, AttrArchived, nil))
		_, err := Encode(c)
		assert.ErrorIs(t, err, ErrInvalidAttribute, f.String())
	}
}

func TestDataTooLarge(t *testing.T) {
	c := NewContent(calc.TI83P, "", NewVarEntry("BIG", calc.TI83PAppVar, AttrNone, make([]byte, 0xFFFF)))
	_, err := Encode(c)
	assert.ErrorIs(t, err, ErrDataTooLarge)

	c = NewContent(calc.TI89, "", NewVarEntry("big", calc.TI89Other, AttrNone, make([]byte, 0x20000)))
	_, err = Encode(c)
	assert.NoError(t, err)
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode(&Content{Family: calc.TI83P})
	assert.ErrorIs(t, err, ErrNoEntry)

	_, err = Encode(NewContent(calc.FamilyUnknown, "", NewVarEntry("X", 0, AttrNone, nil)))
	assert.ErrorIs(t, err, ErrUnsupportedModel)
}

func TestDecodeErrors(t *testing.T) {
	c := NewContent(calc.TI83P, "", NewVarEntry("PROG", calc.TI83Program, AttrNone, []byte{1, 0, 9}))
	good, err := Encode(c)
	require.NoError(t, err)

	corrupt := bytes.Clone(good)
	corrupt[len(corrupt)-3] ^= 0xFF
	_, err = Decode(corrupt)
	assert.ErrorIs(t, err, ErrChecksumMismatch)

	_, err = Decode(good[:40])
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = Decode([]byte("**TI99**rest"))
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = Decode([]byte("**"))
	assert.ErrorIs(t, err, ErrTruncated)

	c9 := NewContent(calc.TI89, "", NewVarEntry("x", calc.TI89Expr, AttrNone, []byte{1, 2}))
	good9, err := Encode(c9)
	require.NoError(t, err)
	binary.LittleEndian.PutUint16(good9[58:60], 2)
	_, err = Decode(good9)
	assert.ErrorIs(t, err, ErrNotSingleVar)
}

func TestFileEmitter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prog.8xp")
	c := NewContent(calc.TI83P, "x", NewVarEntry("PROG", calc.TI83Program, AttrNone, []byte{0, 0}))

	emitter := &FileEmitter{Logger: testLogger("emitter_test")}
	require.NoError(t, emitter.WriteFile(path, c))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "PROG", got.Entry.Name)

	bad := NewContent(calc.TI82, "", NewVarEntry("X", 0, AttrArchived, nil))
	badPath := filepath.Join(t.TempDir(), "bad.82n")
	require.Error(t, emitter.WriteFile(badPath, bad))
	_, err = os.Stat(badPath)
	assert.True(t, os.IsNotExist(err), "nothing written on encode failure")
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, uint16(0), Checksum(nil))
	assert.Equal(t, uint16(6), Checksum([]byte{1, 2, 3}))
	assert.Equal(t, uint16(0xFFFF*3%0x10000), Checksum(bytes.Repeat([]byte{0xFF}, 0x101*3)))
}

func TestPrintableName(t *testing.T) {
	assert.Equal(t, `\x5D\x00`, PrintableName("\x5D\x00"))
	assert.Equal(t, "PROG", PrintableName("PROG"))
	assert.Equal(t, `L\xAA`, PrintableName("L\xAA"))
}

func TestTokenizedNameSurvivesPadding(t *testing.T) {
	for _, name := range []string{"\x5D\x00", "\x5C\x00", "\x60\x09", "A"} {
		c := NewContent(calc.TI83P, "", NewVarEntry(name, calc.TI83List, AttrNone, []byte{0}))
		out, err := Encode(c)
		require.NoError(t, err)
		got, err := Decode(out)
		require.NoError(t, err)
		assert.Equal(t, name, got.Entry.Name, PrintableName(name))
	}
}

func TestFileEmitterMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.8xp")
	c := NewContent(calc.TI83P, "", NewVarEntry("PROG", calc.TI83Program, AttrNone, []byte{0, 0}))

	emitter := &FileEmitter{Logger: testLogger("emitter_test"), Mode: 0o600}
	require.NoError(t, emitter.WriteFile(path, c))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if info.Mode().Perm()&0o077 != 0 {
		// umask can only remove bits, so group/other bits mean Mode was ignored
		t.Fatalf("mode %v", info.Mode().Perm())
	}
}

func TestVerify(t *testing.T) {
	logger := testLogger("verify_test")
	path := filepath.Join(t.TempDir(), "notes.89t")
	c := NewContent(calc.TI89, "note", NewVarEntry("notes", calc.TI89Text, AttrArchived, []byte("hello")))
	require.NoError(t, (&FileEmitter{Logger: logger}).WriteFile(path, c))

	got, err := Verify(path, c, logger)
	require.NoError(t, err)
	assert.Equal(t, "notes", got.Entry.Name)

	other := NewContent(calc.TI89, "note", NewVarEntry("other", calc.TI89Text, AttrNone, []byte("hello")))
	other.Checksum = c.Checksum
	_, err = Verify(path, other, logger)
	require.ErrorIs(t, err, ErrVerifyFailed)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "archived")

	require.NoError(t, os.WriteFile(path, []byte("garbage!"), 0o600))
	_, err = Verify(path, c, logger)
	assert.ErrorIs(t, err, ErrVerifyFailed)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

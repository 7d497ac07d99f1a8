package tifile

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/utz82/tipack/pkg/calc"
	"github.com/utz82/tipack/pkg/utils/permissions"
)

// File permissions of emitted files and created directories
const (
	FilePerms = permissions.DefaultFilePerms
	DirPerms  = permissions.DefaultDirPerms
)

// Encode serializes c into the on-disk format of c.Family and records the
// checksum in c.Checksum.
func Encode(c *Content) ([]byte, error) {
	if c.Entry == nil {
		return nil, ErrNoEntry
	}
	if c.Entry.Archived() && !c.Family.HasArchive() {
		return nil, fmt.Errorf("%w: archive on %s", ErrInvalidAttribute, c.Family)
	}

	switch {
	case c.Family.IsTI8586():
		return encode85(c)
	case c.Family.IsTI8x():
		return encode8x(c)
	case c.Family.IsTI9x():
		return encode9x(c)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedModel, c.Family)
	}
}

// Write encodes c and writes it to w.
func Write(w io.Writer, c *Content) error {
	data, err := Encode(c)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing %s file: %w", c.Family, err)
	}
	return nil
}

// FileEmitter writes containers to disk.
type FileEmitter struct {
	Logger hclog.Logger
	// Mode of created files, FilePerms when zero.
	Mode os.FileMode
}

// WriteFile encodes c and writes it to path, creating the parent directory
// if needed. Nothing is written when encoding fails.
func (e *FileEmitter) WriteFile(path string, c *Content) error {
	logger := e.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	data, err := Encode(c)
	if err != nil {
		return err
	}
	logger.Debug("📦 Encoded file", "model", c.Family, "size", len(data), "checksum", fmt.Sprintf("0x%04x", c.Checksum))

	outputDir := filepath.Dir(path)
	logger.Trace("📁 Ensuring output directory exists", "dir", outputDir)
	if err := os.MkdirAll(outputDir, os.FileMode(DirPerms)); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	mode := e.Mode
	if mode == 0 {
		mode = os.FileMode(FilePerms)
	}
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}

	logger.Debug("💾 File written", "path", path, "mode", permissions.FormatOctal(uint16(mode.Perm())))
	return nil
}

func header8x(f calc.Family, comment string, sectionLen int) []byte {
	buf := make([]byte, 0, preamble8xSize+sectionLen+2)
	buf = append(buf, Signature(f)...)
	buf = append(buf, preamble8xMagic...)
	buf = append(buf, padded(comment, Comment8xSize, 0)...)
	return binary.LittleEndian.AppendUint16(buf, uint16(sectionLen))
}

// encode8x writes the TI-73/82/83/83+/84+ layout.
func encode8x(c *Content) ([]byte, error) {
	e := c.Entry
	hdrLen := entryHeaderShort
	if hasVersionFlag(c.Family) {
		hdrLen = entryHeaderLong
	}

	sectionLen := 2 + hdrLen + 2 + len(e.Data)
	if sectionLen > 0xFFFF {
		return nil, fmt.Errorf("%w: %d bytes", ErrDataTooLarge, len(e.Data))
	}

	section := make([]byte, 0, sectionLen)
	section = binary.LittleEndian.AppendUint16(section, uint16(hdrLen))
	section = binary.LittleEndian.AppendUint16(section, uint16(len(e.Data)))
	section = append(section, byte(e.Type))
	section = append(section, padded(e.Name, VarNameMax, 0)...)
	if hasVersionFlag(c.Family) {
		var flag byte
		if e.Archived() {
			flag = flag8xArchived
		}
		section = append(section, 0x00, flag)
	}
	section = binary.LittleEndian.AppendUint16(section, uint16(len(e.Data)))
	section = append(section, e.Data...)

	c.Checksum = Checksum(section)
	buf := header8x(c.Family, c.Comment, len(section))
	buf = append(buf, section...)
	return binary.LittleEndian.AppendUint16(buf, c.Checksum), nil
}

// encode85 writes the TI-85/86 layout, which stores the name length.
func encode85(c *Content) ([]byte, error) {
	e := c.Entry
	name := truncate(e.Name, VarNameMax)

	var nameField []byte
	hdrLen := 4 + len(name)
	if c.Family == calc.TI86 {
		nameField = padded(name, VarNameMax, ' ')
		hdrLen = entryHeader86
	} else {
		nameField = []byte(name)
	}

	sectionLen := 2 + hdrLen + 2 + len(e.Data)
	if sectionLen > 0xFFFF {
		return nil, fmt.Errorf("%w: %d bytes", ErrDataTooLarge, len(e.Data))
	}

	section := make([]byte, 0, sectionLen)
	section = binary.LittleEndian.AppendUint16(section, uint16(hdrLen))
	section = binary.LittleEndian.AppendUint16(section, uint16(len(e.Data)))
	section = append(section, byte(e.Type), byte(len(name)))
	section = append(section, nameField...)
	section = binary.LittleEndian.AppendUint16(section, uint16(len(e.Data)))
	section = append(section, e.Data...)

	c.Checksum = Checksum(section)
	buf := header8x(c.Family, c.Comment, len(section))
	buf = append(buf, section...)
	return binary.LittleEndian.AppendUint16(buf, c.Checksum), nil
}

// encode9x writes the TI-89/92/92+/V200 layout with a one-entry table.
func encode9x(c *Content) ([]byte, error) {
	e := c.Entry
	folder := e.Folder
	if folder == "" {
		folder = DefaultFolder
	}

	dataOffset := header9xSize + entry9xSize + 4 + len(dataMarker9x)
	fileSize := dataOffset + 4 + len(e.Data) + 2
	if uint64(fileSize) > 0xFFFFFFFF {
		return nil, fmt.Errorf("%w: %d bytes", ErrDataTooLarge, len(e.Data))
	}

	var attr byte
	if e.Archived() {
		attr = attr9xArchived
	}

	buf := make([]byte, 0, fileSize)
	buf = append(buf, Signature(c.Family)...)
	buf = append(buf, header9xMagic...)
	buf = append(buf, padded(folder, FolderNameMax, 0)...)
	buf = append(buf, padded(c.Comment, Comment9xSize, 0)...)
	buf = binary.LittleEndian.AppendUint16(buf, 1)

	buf = binary.LittleEndian.AppendUint32(buf, uint32(dataOffset))
	buf = append(buf, padded(e.Name, VarNameMax, 0)...)
	buf = append(buf, byte(e.Type), attr, 0x00, 0x00)

	buf = binary.LittleEndian.AppendUint32(buf, uint32(fileSize))
	buf = append(buf, dataMarker9x...)

	buf = append(buf, 0x00, 0x00, 0x00, 0x00)
	buf = append(buf, e.Data...)
	c.Checksum = Checksum(e.Data)
	return binary.LittleEndian.AppendUint16(buf, c.Checksum), nil
}

func hasVersionFlag(f calc.Family) bool {
	return f == calc.TI73 || f == calc.TI83P || f == calc.TI84P
}

// Package pack turns a byte stream into a single-variable calculator file.
package pack

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/utz82/tipack/pkg/calc"
	"github.com/utz82/tipack/pkg/payload"
	"github.com/utz82/tipack/pkg/payload/operations"
	"github.com/utz82/tipack/pkg/tifile"
)

// Options describes one packing run. Only one of Output and Type needs to
// be set; the other is derived.
type Options struct {
	Input    string // file to read, "" or "-" for standard input
	Output   string
	Name     string // on-device name, derived from Output when empty
	Type     string // extension such as "8xp"
	Model    string // forces a family instead of resolving it from Type
	Comment  string
	Folder   string // 68k folder, "main" when empty
	InputOps string // operations to reverse while reading, e.g. "gzip"

	Protect bool
	Complex bool
	Archive bool
	Raw     bool // never insert a length prefix
	Verbose bool // re-read, verify and display the written file

	// FileMode of the output file, the emitter default when zero.
	FileMode os.FileMode

	// Now is used for comment templates; time.Now when nil.
	Now func() time.Time
}

// Result describes the file a successful run wrote.
type Result struct {
	Family calc.Family
	TypeID calc.TypeID
	Name   string
	Size   int
	Path   string
}

// Emitter writes a finished container to path.
type Emitter interface {
	WriteFile(path string, c *tifile.Content) error
}

// Packer runs the pipeline with replaceable collaborators.
type Packer struct {
	Logger    hclog.Logger
	Converter calc.NameConverter
	Emitter   Emitter
}

// Run packs with the built-in tokenizer and file emitter.
func Run(ctx context.Context, opts Options, logger hclog.Logger) (*Result, error) {
	p := &Packer{Logger: logger}
	return p.Run(ctx, opts)
}

// target is the resolved destination of a run.
type target struct {
	path   string
	family calc.Family
	id     calc.TypeID
	name   string
	ops    uint64 // packed input operations
}

// Run reads the input, builds the variable and hands it to the emitter.
func (p *Packer) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := p.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	conv := p.Converter
	if conv == nil {
		conv = calc.Tokenizer{}
	}
	emitter := p.Emitter
	if emitter == nil {
		emitter = &tifile.FileEmitter{Logger: logger.Named("emitter"), Mode: opts.FileMode}
	}

	tgt, err := resolveTarget(opts, conv)
	if err != nil {
		return nil, err
	}
	logger.Debug("🎯 Target resolved",
		"path", tgt.path,
		"model", tgt.family,
		"type", calc.TypeName(tgt.family, tgt.id),
		"name", tifile.PrintableName(tgt.name),
	)

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	comment, err := ExpandComment(opts.Comment, now())
	if err != nil {
		return nil, UsageError("comment", err)
	}

	data, err := readPayload(opts, tgt, logger)
	if err != nil {
		return nil, err
	}

	attr := uint8(tifile.AttrNone)
	if opts.Archive {
		attr = tifile.AttrArchived
	}
	entry := tifile.NewVarEntry(tgt.name, tgt.id, attr, data)
	entry.Folder = opts.Folder
	content := tifile.NewContent(tgt.family, comment, entry)

	if err := ctx.Err(); err != nil {
		return nil, OutputError("write", err)
	}
	if err := emitter.WriteFile(tgt.path, content); err != nil {
		return nil, OutputError("write", err)
	}
	logger.Info("✅ Variable written", "path", tgt.path, "size", entry.Size)

	if opts.Verbose {
		written, err := tifile.Verify(tgt.path, content, logger.Named("verify"))
		if err != nil {
			return nil, OutputError("verify", err)
		}
		tifile.Display(logger, written)
	}

	return &Result{
		Family: tgt.family,
		TypeID: tgt.id,
		Name:   entry.Name,
		Size:   entry.Size,
		Path:   tgt.path,
	}, nil
}

func resolveTarget(opts Options, conv calc.NameConverter) (*target, error) {
	output, typ := opts.Output, opts.Type
	switch {
	case output == "" && typ == "":
		return nil, UsageError("options", ErrNoType)
	case output == "":
		output = OutputPath(opts.Input, typ)
	case typ == "":
		typ = TypeFromPath(output)
		if typ == "" {
			return nil, UsageError("options", ErrNoType)
		}
	}

	var (
		f   calc.Family
		id  calc.TypeID
		err error
	)
	if opts.Model != "" {
		f, err = calc.ParseFamily(opts.Model)
		if err != nil {
			return nil, UsageError("model", err)
		}
		id, err = calc.ResolveFor(f, typ)
	} else {
		f, id, err = calc.Resolve(typ)
	}
	if err != nil {
		return nil, UsageError("type", err)
	}

	// Complex 68k lists and matrices have ids of their own that no extension
	// names; they are written as is.
	id = calc.ApplyAttributes(f, id, opts.Protect, opts.Complex)

	ops, err := operations.StringToOperations(opts.InputOps)
	if err != nil {
		return nil, UsageError("input-ops", err)
	}

	name := opts.Name
	if name == "" {
		name, err = calc.DeriveName(f, id, output, conv)
		if err != nil {
			return nil, UsageError("name", err)
		}
	}

	return &target{path: output, family: f, id: id, name: name, ops: ops}, nil
}

func readPayload(opts Options, tgt *target, logger hclog.Logger) ([]byte, error) {
	in, inName, err := payload.Open(opts.Input)
	if err != nil {
		return nil, InputError("open", err)
	}
	defer in.Close()

	if tgt.ops != 0 {
		logger.Debug("🔓 Decoding input", "ops", operations.OperationsToString(tgt.ops))
	}
	r, err := payload.Decode(in, opts.InputOps)
	if err != nil {
		return nil, InputError("decode", fmt.Errorf("%s: %w", inName, err))
	}
	defer r.Close()

	a := &payload.Assembler{
		Reserve: calc.HasLengthPrefix(tgt.family, tgt.id) && !opts.Raw,
		Logger:  logger.Named("payload"),
	}
	data, err := a.ReadFrom(r)
	if err != nil {
		return nil, InputError("read", fmt.Errorf("%s: %w", inName, err))
	}
	return data, nil
}

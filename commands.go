package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	pkgerrors "github.com/pkg/errors"

	"github.com/skx/dosk/config"
	"github.com/skx/dosk/dos"
	"github.com/skx/dosk/registers"
	"github.com/skx/dosk/script"
	"github.com/skx/dosk/static"
	"github.com/skx/dosk/trace"
)

// errUsage is returned when a sub-command is given bad arguments.
var errUsage = errors.New("bad arguments")

// session is a kernel configured from the settings and flags.
type session struct {
	k      *dos.Kernel
	logger *slog.Logger
	tracer *trace.Writer
}

// kernelFlags registers the flags shared by the commands which create a
// kernel, defaulting to the configuration file.
func kernelFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging.")
	fs.StringVar(&cfg.Input, "input", cfg.Input, "The console input driver to use.")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "The console output driver to use.")
	fs.StringVar(&cfg.Trace, "trace", cfg.Trace, "Record every dispatch to this file.")
	fs.StringVar(&cfg.Location, "location", cfg.Location, "The time zone file times use.")
}

// open creates a kernel from the settings, and prepares its console.
func open(cfg config.Config, stderr io.Writer) (*session, error) {
	// Setup our logging level - default to warnings or higher
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)

	// But show "everything" if debugging is enabled
	if cfg.Debug {
		lvl.Set(slog.LevelDebug)
	}

	s := &session{
		logger: slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{
			Level: lvl,
		})),
	}

	loc, err := cfg.TimeZone()
	if err != nil {
		return nil, err
	}

	options := []dos.Option{
		dos.WithLogger(s.logger),
		dos.WithInputDriver(cfg.Input),
		dos.WithOutputDriver(cfg.Output),
		dos.WithLocation(loc),
	}

	if cfg.Trace != "" {
		f, err := os.Create(cfg.Trace)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "failed to create trace")
		}
		s.tracer, err = trace.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		options = append(options, dos.WithTrace(s.tracer))
	}

	s.k, err = dos.New(options...)
	if err != nil {
		s.closeTrace()
		return nil, err
	}

	if err = s.k.Setup(); err != nil {
		s.closeTrace()
		return nil, pkgerrors.Wrap(err, "failed to setup console")
	}
	return s, nil
}

// closeTrace finishes the trace, if there is one.
func (s *session) closeTrace() error {
	if s.tracer == nil {
		return nil
	}
	err := s.tracer.Close()
	s.tracer = nil
	return err
}

// Close restores the console and finishes the trace.
func (s *session) Close() error {
	err := s.k.TearDown()
	if terr := s.closeTrace(); err == nil {
		err = terr
	}
	return err
}

// intCmd runs one dispatch, and shows the registers afterwards.
//
// Registers are given as name=value pairs.  Values are hexadecimal, or a
// double-quoted string which is placed in memory and replaced by its
// address.
func intCmd(args []string, stdout, stderr io.Writer) (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("int", flag.ContinueOnError)
	fs.SetOutput(stderr)
	kernelFlags(fs, &cfg)
	if err = fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() < 1 {
		return errUsage
	}

	intnum, err := strconv.ParseUint(fs.Arg(0), 16, 8)
	if err != nil {
		return fmt.Errorf("bad interrupt number %q: %w", fs.Arg(0), errUsage)
	}

	s, err := open(cfg, stderr)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()

	var b registers.Bank
	for _, arg := range fs.Args()[1:] {
		if err = assign(s.k, &b, arg); err != nil {
			return err
		}
	}

	if err = s.k.Dispatch(uint8(intnum), &b); err != nil {
		return err
	}

	fmt.Fprintln(stdout, show(&b))
	return nil
}

// assign handles one name=value argument.
func assign(k *dos.Kernel, b *registers.Bank, arg string) error {
	name, value, ok := strings.Cut(arg, "=")
	if !ok {
		return fmt.Errorf("expected name=value, got %q: %w", arg, errUsage)
	}
	name = strings.ToUpper(name)

	// The byte views have setters of their own.
	set := map[string]func(uint8){
		"AH": b.SetAH, "AL": b.SetAL,
		"BH": b.SetBH, "BL": b.SetBL,
		"CH": b.SetCH, "CL": b.SetCL,
		"DH": b.SetDH, "DL": b.SetDL,
	}
	if fn, ok := set[name]; ok {
		v, err := strconv.ParseUint(value, 16, 8)
		if err != nil {
			return fmt.Errorf("bad value for %s: %w", name, errUsage)
		}
		fn(uint8(v))
		return nil
	}

	var v uint64
	if strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) && len(value) >= 2 {
		addr, err := k.Memory.PlaceString(value[1 : len(value)-1])
		if err != nil {
			return err
		}
		v = uint64(addr)
	} else {
		var err error
		v, err = strconv.ParseUint(value, 16, 64)
		if err != nil {
			return fmt.Errorf("bad value for %s: %w", name, errUsage)
		}
	}

	if name == "FLAGS" {
		b.Flags = v
		return nil
	}
	r := b.Lookup(name)
	if r == nil {
		return fmt.Errorf("unknown register %s: %w", name, errUsage)
	}
	*r = registers.Reg(v)
	return nil
}

// show formats the registers a caller sees.
func show(b *registers.Bank) string {
	cf := 0
	if b.Carry() {
		cf = 1
	}
	return fmt.Sprintf("AX=%04X BX=%04X CX=%04X DX=%04X SI=%04X DI=%04X DS=%04X ES=%04X CF=%d",
		uint64(b.AX), uint64(b.BX), uint64(b.CX), uint64(b.DX),
		uint64(b.SI), uint64(b.DI), uint64(b.DS), uint64(b.ES), cf)
}

// runCmd runs a Lua script, either from a file or one of those built
// into the binary.
func runCmd(args []string, stdout, stderr io.Writer) (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	kernelFlags(fs, &cfg)
	builtin := fs.Bool("builtin", false, "Run the named built-in script.")
	list := fs.Bool("list", false, "List the built-in scripts.")
	if err = fs.Parse(args); err != nil {
		return errUsage
	}

	if *list {
		names, err := static.Scripts()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	if fs.NArg() != 1 {
		return errUsage
	}
	name := fs.Arg(0)

	var src string
	if *builtin {
		src, err = static.Script(name)
		if err != nil {
			return fmt.Errorf("unknown script %q: %w", name, errUsage)
		}
	}

	s, err := open(cfg, stderr)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()

	h := script.New(s.k, stdout)
	defer h.Close()

	if *builtin {
		err = h.RunString(src)
	} else {
		err = h.RunFile(name)
	}
	if errors.Is(err, dos.ErrUnimplemented) {
		s.logger.Error("unsupported dispatch stopped the script",
			slog.String("script", name),
			slog.String("error", err.Error()))
	}
	return err
}

// replCmd reads Lua interactively.
func replCmd(args []string, stdout, stderr io.Writer) (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	kernelFlags(fs, &cfg)
	if err = fs.Parse(args); err != nil {
		return errUsage
	}

	s, err := open(cfg, stderr)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()

	h := script.New(s.k, stdout)
	defer h.Close()
	return h.Repl()
}

// traceCmd handles the trace sub-commands, of which there is one.
func traceCmd(args []string, stdout io.Writer) error {
	if len(args) < 1 || args[0] != "dump" {
		return errUsage
	}

	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	color := fs.Bool("color", isatty.IsTerminal(os.Stdout.Fd()), "Highlight changed registers.")
	if err := fs.Parse(args[1:]); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return pkgerrors.Wrap(err, "failed to open trace")
	}

	r, err := trace.NewReader(f)
	if err != nil {
		f.Close()
		return err
	}
	defer r.Close()

	return trace.Dump(stdout, r, *color)
}

/*
Copyright (c) 2019-2021 Andreas T Jonsson

This software is provided 'as-is', without any express or implied
warranty. In no event will the authors be held liable for any damages
arising from the use of this software.

Permission is granted to anyone to use this software for any purpose,
including commercial applications, and to alter it and redistribute it
freely, subject to the following restrictions:

1. The origin of this software must not be misrepresented; you must not
   claim that you wrote the original software. If you use this software
   in a product, an acknowledgment in the product documentation would be
   appreciated but is not required.
2. Altered source versions must be plainly marked as such, and must not be
   misrepresented as being the original software.
3. This notice may not be removed or altered from any source distribution.
*/

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/andreas-jonsson/emu8086/emulator"
	"github.com/andreas-jonsson/emu8086/emulator/loader"
	"github.com/andreas-jonsson/emu8086/emulator/memory"
	"github.com/andreas-jonsson/emu8086/emulator/monitor"
	"github.com/andreas-jonsson/emu8086/emulator/processor/cpu"
	"github.com/andreas-jonsson/emu8086/emulator/snapshot"
	"github.com/andreas-jonsson/emu8086/emulator/trace"
	"github.com/andreas-jonsson/emu8086/version"
	"github.com/gdamore/tcell"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/term"
)

type config struct {
	program     string
	traceFile   string
	saveFile    string
	restoreFile string
	dumpMem     string
	historyFile string

	maxSteps uint64
	debug    bool
	step     bool
	view     bool
}

var (
	cfg = config{program: "program.com"}
	ver bool
)

var errNoTerminal = errors.New("interactive mode requires a terminal")

func init() {
	if p, ok := os.LookupEnv("EMU8086_DEFAULT_PROGRAM"); ok {
		cfg.program = p
	}

	flag.BoolVar(&ver, "v", false, "Print version information")
	flag.BoolVar(&cfg.debug, "debug", false, "Log every executed instruction")
	flag.BoolVar(&cfg.step, "step", false, "Start the interactive step monitor")
	flag.BoolVar(&cfg.view, "view", false, "Show registers and memory in a terminal view")

	flag.Uint64Var(&cfg.maxSteps, "max-steps", 0, "Stop after this many instructions (0 is unlimited)")
	flag.StringVar(&cfg.traceFile, "trace", "", "Write a JSON instruction trace to file")
	flag.StringVar(&cfg.saveFile, "save", "", "Save a snapshot when the program halts")
	flag.StringVar(&cfg.restoreFile, "restore", "", "Resume from a snapshot instead of loading a program")
	flag.StringVar(&cfg.dumpMem, "dump-mem", "", "Hex dump a linear memory range (from,to) on exit")
	flag.StringVar(&cfg.historyFile, "history", "", "Monitor command history file")
}

func main() {
	flag.Parse()

	if ver {
		fmt.Printf("%s (%s)\n", version.Current.FullString(), version.Hash)
		return
	}
	if flag.NArg() > 0 {
		cfg.program = flag.Arg(0)
	}

	log := newLogger(cfg.debug)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if !cfg.step && !cfg.view {
		printLogo()
	}
	if err := run(ctx, afero.NewOsFs(), cfg, log, os.Stdout); err != nil {
		log.WithError(err).Error("emulation failed")
		os.Exit(1)
	}
}

func newLogger(debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    !term.IsTerminal(int(os.Stderr.Fd())),
	})
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func run(ctx context.Context, fs afero.Fs, cfg config, log logrus.FieldLogger, out io.Writer) (err error) {
	p := cpu.NewCPU()
	s := emulator.NewSession(p, log)
	s.MaxSteps = cfg.maxSteps
	s.LogSteps = cfg.debug

	if cfg.restoreFile != "" {
		if err := snapshot.LoadFile(fs, cfg.restoreFile, p); err != nil {
			return err
		}
		log.WithField("file", cfg.restoreFile).Info("snapshot restored")
	} else {
		img, err := loader.Load(fs, cfg.program, p)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"file": img.Name, "base": img.Base, "size": img.Size}).Info("program loaded")
	}

	if cfg.traceFile != "" {
		fp, err := fs.Create(cfg.traceFile)
		if err != nil {
			return err
		}
		defer fp.Close()

		rec := trace.NewRecorder(fp, trace.DefaultQueueSize, trace.DefaultBufferSize)
		s.Tracer = rec
		defer func() {
			if cerr := rec.Close(); err == nil {
				err = cerr
			}
		}()
	}

	switch {
	case cfg.view:
		err = runView(ctx, s)
	case cfg.step:
		err = runMonitor(ctx, s, cfg.historyFile)
	default:
		_, err = s.Run(ctx)
	}

	fmt.Fprint(out, monitor.RegisterDump(p.GetRegisters()))
	if cfg.dumpMem != "" {
		if derr := dumpMemory(out, p, cfg.dumpMem); derr != nil {
			log.WithError(derr).Warn("could not dump memory")
		}
	}
	if err != nil {
		return err
	}

	if cfg.saveFile != "" {
		if err := snapshot.SaveFile(fs, cfg.saveFile, p); err != nil {
			return err
		}
		log.WithField("file", cfg.saveFile).Info("snapshot saved")
	}
	return nil
}

func runMonitor(ctx context.Context, s *emulator.Session, history string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNoTerminal
	}
	rl, err := monitor.NewTerminal(history)
	if err != nil {
		return err
	}
	defer rl.Close()
	return monitor.New(s, rl.Stdout()).Serve(ctx, rl)
}

func runView(ctx context.Context, s *emulator.Session) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	screen.HideCursor()
	screen.DisableMouse()
	return monitor.NewView(screen, s).Run(ctx)
}

func dumpMemory(w io.Writer, p *cpu.CPU, rng string) error {
	var from, to uint32
	if n, _ := fmt.Sscanf(rng, "%x,%x", &from, &to); n != 2 {
		return errors.Errorf("invalid memory range: %s", rng)
	}
	s, err := monitor.MemoryDump(p.GetMemory(), memory.Pointer(from), memory.Pointer(to))
	if err != nil {
		return err
	}
	fmt.Fprint(w, "\n", s)
	return nil
}

func printLogo() {
	fmt.Println(strings.TrimPrefix(logo, "\n"))
	fmt.Println(" v" + version.Current.String() + "  " + version.Copyright)
	fmt.Println()
}

var logo = `
 ___ _ __ ___  _   _ ( _ ) / _ \ ( _ ) / /_
/ _ \ '_ ' _ \| | | |/ _ \| | | |/ _ \| '_ \
\__/ | | | | | |_| | (_) | |_| | (_) | (_) |
\___|_| |_| |_|\__,_|\___/ \___/ \___/ \___/`

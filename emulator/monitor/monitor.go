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

package monitor

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/andreas-jonsson/emu8086/emulator"
	"github.com/andreas-jonsson/emu8086/emulator/memory"
	"github.com/andreas-jonsson/emu8086/emulator/processor/cpu"
	"github.com/chzyer/readline"
	"github.com/pkg/errors"
)

var ErrQuit = errors.New("quit")

const historySize = 128

// Terminal is the line editor the monitor reads commands from.
type Terminal interface {
	Readline() (string, error)
	SetPrompt(string)
}

// NewTerminal returns a readline terminal on stdin/stdout.
func NewTerminal(historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "q",
		HistoryFile:     historyFile,
	})
}

// Monitor is an interactive step debugger for a session.
type Monitor struct {
	s   *emulator.Session
	out io.Writer

	breakpoints         []uint16
	history             chan string
	numInstructionsLost uint64
}

func New(s *emulator.Session, out io.Writer) *Monitor {
	return &Monitor{
		s:       s,
		out:     out,
		history: make(chan string, historySize),
	}
}

func (m *Monitor) Prompt() string {
	r := m.s.CPU.GetRegisters()
	return fmt.Sprintf("[%v] DEBUG> ", memory.NewAddress(r.CS(), r.IP))
}

// Serve reads commands until quit or end of input.
func (m *Monitor) Serve(ctx context.Context, term Terminal) error {
	for {
		term.SetPrompt(m.Prompt())
		ln, err := term.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		if err := m.Exec(ctx, ln); err == ErrQuit {
			return nil
		} else if err != nil {
			fmt.Fprintln(m.out, err)
		}
	}
}

// Exec runs a single command. Emulation errors are returned to the caller.
func (m *Monitor) Exec(ctx context.Context, ln string) error {
	ln = strings.TrimSpace(ln)
	switch {
	case ln == "q":
		return ErrQuit
	case ln == "" || ln == "s":
		return m.step()
	case ln == "c":
		return m.cont(ctx)
	case ln == "r":
		fmt.Fprint(m.out, RegisterDump(m.s.CPU.GetRegisters()))
	case ln == "@":
		m.showLocation()
	case ln == "t":
		m.showStats()
	case ln == "h":
		m.showHistory(16)
	case ln == "cb":
		fmt.Fprintln(m.out, "Clear breakpoints!")
		m.breakpoints = m.breakpoints[:0]
	case ln == "b":
		m.showBreakpoints()
	case strings.HasPrefix(ln, "b "):
		m.setBreakpoint(ln[2:])
	case strings.HasPrefix(ln, "rb "):
		m.removeBreakpoint(ln[3:])
	case strings.HasPrefix(ln, "m "):
		m.showMemory(ln[2:])
	default:
		fmt.Fprintln(m.out, "unknown command:", ln)
	}
	return nil
}

func (m *Monitor) step() error {
	if m.s.Halted() {
		fmt.Fprintln(m.out, "program halted")
		return nil
	}
	m.pushHistory()
	_, err := m.s.Step()
	return err
}

func (m *Monitor) cont(ctx context.Context) error {
	n, err := m.s.RunUntil(ctx, m.atBreakpoint)
	fmt.Fprintf(m.out, "%d instructions executed\n", n)
	if err == nil && m.s.Halted() {
		fmt.Fprintln(m.out, "program halted")
	}
	return err
}

func (m *Monitor) atBreakpoint(p *cpu.CPU) bool {
	for i, br := range m.breakpoints {
		if p.IP == br {
			fmt.Fprintln(m.out, "BREAK:", i)
			return true
		}
	}
	return false
}

func (m *Monitor) showLocation() {
	p := m.s.CPU
	addr := memory.NewAddress(p.CS(), p.IP)
	if op, err := p.PeekOpcode(); err != nil {
		fmt.Fprintln(m.out, err)
	} else {
		fmt.Fprintf(m.out, "%v %v: 0x%02X\n", addr, addr.Pointer(), op)
	}
}

func (m *Monitor) showStats() {
	p := m.s.CPU
	st := p.GetStats()
	fmt.Fprintf(m.out, "Instructions: %d\nBytes read: %d\nBytes written: %d\nPending cycles: %d\n",
		st.NumInstructions, st.RX, st.TX, p.PendingCycles())
}

func (m *Monitor) showMemory(rng string) {
	var from, to uint32
	mem := m.s.CPU.GetMemory()

	switch n, _ := fmt.Sscanf(rng, "%x,%x", &from, &to); n {
	case 1:
		d, err := mem.ReadBytePtr(memory.Pointer(from))
		if err != nil {
			fmt.Fprintln(m.out, err)
			return
		}
		fmt.Fprintf(m.out, "0x%X: 0x%X (%d)\n", from, d, d)
	case 2:
		s, err := MemoryDump(mem, memory.Pointer(from), memory.Pointer(to))
		if err != nil {
			fmt.Fprintln(m.out, err)
			return
		}
		fmt.Fprint(m.out, s)
	default:
		fmt.Fprintln(m.out, "invalid memory range")
	}
}

func (m *Monitor) showBreakpoints() {
	for i, br := range m.breakpoints {
		fmt.Fprintf(m.out, "%d:\t0x%X\n", i, br)
	}
}

func (m *Monitor) setBreakpoint(br string) {
	var b uint16
	if n, _ := fmt.Sscanf(br, "%x", &b); n == 1 {
		fmt.Fprintf(m.out, "Breakpoint set at: CS:0x%X\n", b)
		m.breakpoints = append(m.breakpoints, b)
		return
	}
	fmt.Fprintln(m.out, "invalid breakpoint")
}

func (m *Monitor) removeBreakpoint(br string) {
	var i int
	if n, _ := fmt.Sscanf(br, "%d", &i); n == 1 && i >= 0 && i < len(m.breakpoints) {
		fmt.Fprintf(m.out, "Removed breakpoint %d at: CS:0x%X\n", i, m.breakpoints[i])
		m.breakpoints = append(m.breakpoints[:i], m.breakpoints[i+1:]...)
		return
	}
	fmt.Fprintln(m.out, "invalid breakpoint index")
}

func (m *Monitor) pushHistory() {
	p := m.s.CPU
	op, _ := p.PeekOpcode()
	inst := fmt.Sprintf("| [%v] 0x%02X", memory.NewAddress(p.CS(), p.IP), op)

	select {
	case m.history <- inst:
	default:
		<-m.history
		m.numInstructionsLost++
		m.history <- inst
	}
}

func (m *Monitor) showHistory(num int) {
	fmt.Fprintln(m.out, "| Lost instructions:", m.numInstructionsLost)
	for i := 0; i < len(m.history); i++ {
		inst := <-m.history
		if i < num {
			fmt.Fprintln(m.out, inst)
		}
		m.history <- inst
	}
}

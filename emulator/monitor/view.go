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

	"github.com/andreas-jonsson/emu8086/emulator"
	"github.com/andreas-jonsson/emu8086/emulator/memory"
	"github.com/gdamore/tcell"
)

const viewMemoryRows = 8

// View is a full screen register and memory display. Keys: s/Enter step,
// c continue, q/Esc quit.
type View struct {
	screen tcell.Screen
	s      *emulator.Session
	status string

	labelStyle, valueStyle, statusStyle tcell.Style
}

func NewView(screen tcell.Screen, s *emulator.Session) *View {
	return &View{
		screen:      screen,
		s:           s,
		status:      "s: step  c: continue  q: quit",
		labelStyle:  tcell.StyleDefault.Foreground(tcell.ColorTeal),
		valueStyle:  tcell.StyleDefault.Foreground(tcell.ColorWhite),
		statusStyle: tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	}
}

func (v *View) print(x, y int, style tcell.Style, str string) int {
	for _, c := range str {
		v.screen.SetContent(x, y, c, nil, style)
		x++
	}
	return x
}

func (v *View) printRegs(y int, names []string, values []uint16) {
	x := 0
	for i, name := range names {
		x = v.print(x, y, v.labelStyle, name+" ")
		x = v.print(x, y, v.valueStyle, fmt.Sprintf("%04X", values[i]))
		x += 2
	}
}

func (v *View) Draw() {
	p := v.s.CPU
	v.screen.Clear()

	v.printRegs(0, []string{"AX", "BX", "CX", "DX"}, []uint16{p.AX(), p.BX(), p.CX(), p.DX()})
	v.printRegs(1, []string{"SP", "BP", "SI", "DI"}, []uint16{p.SP(), p.BP(), p.SI(), p.DI()})
	v.printRegs(2, []string{"CS", "DS", "SS", "ES"}, []uint16{p.CS(), p.DS(), p.SS(), p.ES()})
	v.printRegs(3, []string{"IP"}, []uint16{p.IP})

	x := v.print(10, 3, v.labelStyle, "FLAGS ")
	v.print(x, 3, v.valueStyle, FlagString(p.Flags))

	x = v.print(0, 4, v.labelStyle, "STEPS ")
	v.print(x, 4, v.valueStyle, fmt.Sprintf("%d  CYCLES %d", v.s.Steps(), p.PendingCycles()))

	start := memory.NewPointer(p.CS(), p.IP) &^ 0xF
	mem := p.GetMemory()
	for row := 0; row < viewMemoryRows; row++ {
		ptr := start + memory.Pointer(row*16)
		data, err := mem.Slice(ptr, 16)
		if err != nil {
			break
		}
		x := v.print(0, 6+row, v.labelStyle, fmt.Sprintf("%05X ", uint32(ptr)))
		v.print(x, 6+row, v.valueStyle, fmt.Sprintf("% X", data))
	}

	_, h := v.screen.Size()
	v.print(0, h-1, v.statusStyle, v.status)
	v.screen.Show()
}

// Run handles key events until the user quits, ctx is cancelled or the
// screen is finalized.
func (v *View) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			v.screen.PostEvent(tcell.NewEventInterrupt(ctx))
		case <-done:
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		v.Draw()

		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return err
			}
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
				return nil
			case ev.Key() == tcell.KeyEnter, ev.Rune() == 's':
				v.step()
			case ev.Rune() == 'c':
				v.cont(ctx)
			}
		}
	}
}

func (v *View) step() {
	if v.s.Halted() {
		v.status = "program halted"
		return
	}
	if _, err := v.s.Step(); err != nil {
		v.status = err.Error()
		return
	}
	v.status = fmt.Sprintf("stepped to %v", memory.NewAddress(v.s.CPU.CS(), v.s.CPU.IP))
}

func (v *View) cont(ctx context.Context) {
	n, err := v.s.Run(ctx)
	if err != nil {
		v.status = err.Error()
		return
	}
	v.status = fmt.Sprintf("program halted after %d instructions", n)
}

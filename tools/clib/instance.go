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

	"github.com/andreas-jonsson/emu8086/emulator"
	"github.com/andreas-jonsson/emu8086/emulator/loader"
	"github.com/andreas-jonsson/emu8086/emulator/monitor"
	"github.com/andreas-jonsson/emu8086/emulator/processor/cpu"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// instance is the state behind one C handle.
type instance struct {
	fs      afero.Fs
	session *emulator.Session
}

func newInstance(fs afero.Fs, log logrus.FieldLogger) *instance {
	return &instance{fs: fs, session: emulator.NewSession(cpu.NewCPU(), log)}
}

// load resets the machine, including memory and statistics, and loads name.
func (i *instance) load(name string) error {
	p := i.session.CPU
	p.Reset()
	p.ResetStats()
	p.GetMemory().Clear()

	_, err := loader.Load(i.fs, name, p)
	return err
}

// run executes at most maxSteps instructions. Reaching the limit is not an
// error so a host can run a program in slices.
func (i *instance) run(maxSteps uint64) (uint64, error) {
	i.session.MaxSteps = maxSteps
	n, err := i.session.Run(context.Background())
	if errors.Is(err, emulator.ErrStepLimit) {
		return n, nil
	}
	return n, err
}

func (i *instance) registers() string {
	return monitor.RegisterLine(i.session.CPU.GetRegisters())
}

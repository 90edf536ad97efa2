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
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/andreas-jonsson/emu8086/emulator/loader"
	"github.com/andreas-jonsson/emu8086/emulator/processor/cpu"
	"github.com/andreas-jonsson/emu8086/emulator/snapshot"
	"github.com/andreas-jonsson/emu8086/emulator/trace"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
)

func TestRunProgram(t *testing.T) {
	fs := afero.NewMemMapFs()
	// MOV AX,1234 / ADD AX,0001 / RET
	afero.WriteFile(fs, "add.com", []byte{0xB8, 0x34, 0x12, 0x05, 0x01, 0x00, 0xC3}, 0644)

	log, _ := test.NewNullLogger()
	var out bytes.Buffer

	c := config{program: "add.com", saveFile: "add.snap", traceFile: "add.json", dumpMem: "7100,7106"}
	if err := run(context.Background(), fs, c, log, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "AX 0x1235") {
		t.Errorf("Missing register dump!\n%s", out.String())
	}
	if !strings.Contains(out.String(), "b8 34 12 05 01 00 c3") {
		t.Errorf("Missing memory dump!\n%s", out.String())
	}

	p := cpu.NewCPU()
	if err := snapshot.LoadFile(fs, "add.snap", p); err != nil {
		t.Fatal(err)
	}
	if v := p.GetRegisters().AX(); v != 0x1235 {
		t.Errorf("Invalid AX in snapshot! (Got 0x%X but expected 0x%X)", v, 0x1235)
	}

	fp, err := fs.Open("add.json")
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()

	dec := trace.NewDecoder(fp)
	for i := 0; i < 2; i++ {
		if _, err := dec.Next(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRunRestore(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "inc.com", []byte{0x04, 0x01, 0x04, 0x01, 0xC3}, 0644)

	log, _ := test.NewNullLogger()
	c := config{program: "inc.com", maxSteps: 1}
	if err := run(context.Background(), fs, c, log, &bytes.Buffer{}); err == nil {
		t.Fatal("Expected step limit error!")
	}

	p := cpu.NewCPU()
	if _, err := loader.Load(fs, "inc.com", p); err != nil {
		t.Fatal(err)
	}
	p.GetRegisters().SetAL(0x10)
	if err := snapshot.SaveFile(fs, "start.snap", p); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run(context.Background(), fs, config{restoreFile: "start.snap"}, log, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "AL 0x12") {
		t.Errorf("Invalid register dump!\n%s", out.String())
	}
}

func TestRunMissingProgram(t *testing.T) {
	log, _ := test.NewNullLogger()
	if err := run(context.Background(), afero.NewMemMapFs(), config{program: "none.com"}, log, &bytes.Buffer{}); err == nil {
		t.Error("Expected load error!")
	}
}

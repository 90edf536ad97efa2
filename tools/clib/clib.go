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

// Command clib builds a C shared library exposing the emulator.
//
//	go build -buildmode=c-shared -o libemu8086.so ./tools/clib
package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"os"
	"runtime/cgo"
	"unsafe"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

var logger = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &logrus.TextFormatter{DisableTimestamp: true},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.WarnLevel,
}

func lookup(h C.uintptr_t) *instance {
	return cgo.Handle(h).Value().(*instance)
}

//export emu_create
func emu_create() C.uintptr_t {
	return C.uintptr_t(cgo.NewHandle(newInstance(afero.NewOsFs(), logger)))
}

//export emu_destroy
func emu_destroy(h C.uintptr_t) {
	cgo.Handle(h).Delete()
}

//export emu_load
func emu_load(h C.uintptr_t, path *C.char) C.int {
	if err := lookup(h).load(C.GoString(path)); err != nil {
		logger.WithError(err).Error("load failed")
		return -1
	}
	return 0
}

// emu_run returns the number of executed instructions or -1 on error.
//
//export emu_run
func emu_run(h C.uintptr_t, maxSteps C.uint64_t) C.int64_t {
	n, err := lookup(h).run(uint64(maxSteps))
	if err != nil {
		logger.WithError(err).Error("run failed")
		return -1
	}
	return C.int64_t(n)
}

// emu_registers returns a string that must be released with emu_free_string.
//
//export emu_registers
func emu_registers(h C.uintptr_t) *C.char {
	return C.CString(lookup(h).registers())
}

//export emu_free_string
func emu_free_string(s *C.char) {
	C.free(unsafe.Pointer(s))
}

func main() {}

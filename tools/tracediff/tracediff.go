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
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/andreas-jonsson/emu8086/emulator/trace"
	"github.com/pkg/errors"
)

var (
	input     = "trace.json"
	reference = "reference.json"
	mode      = "all"
	maxEvents = 1000000
	verbose   bool
)

func init() {
	flag.StringVar(&input, "trace", input, "Trace to validate")
	flag.StringVar(&reference, "reference", reference, "Reference trace")
	flag.StringVar(&mode, "mode", mode, "Comparison: all, location")
	flag.IntVar(&maxEvents, "max", maxEvents, "Maximum number of events to compare")
	flag.BoolVar(&verbose, "verbose", false, "Print every mismatch")
}

type report struct {
	Compared, Equal int
	FirstMismatch   int
	Mismatch        [2]trace.Event
}

func (r report) String() string {
	s := fmt.Sprintf("Compared: %d\tEqual: %d", r.Compared, r.Equal)
	if r.FirstMismatch >= 0 {
		a, b := &r.Mismatch[0], &r.Mismatch[1]
		s += fmt.Sprintf("\nFirst mismatch at step %d:\n\t%v 0x%02X %+v\n\t%v 0x%02X %+v",
			r.FirstMismatch, a.Before.Address(), a.Opcode, a.After, b.Before.Address(), b.Opcode, b.After)
	}
	return s
}

type compareFunc func(a, b *trace.Event) bool

func compareMode(name string) (compareFunc, error) {
	switch name {
	case "all":
		return (*trace.Event).Equal, nil
	case "location":
		return (*trace.Event).SameLocation, nil
	}
	return nil, errors.Errorf("unknown mode: %s", name)
}

func compare(a, b io.Reader, eq compareFunc, max int, onMismatch func(i int, a, b *trace.Event)) (report, error) {
	r := report{FirstMismatch: -1}
	da, db := trace.NewDecoder(a), trace.NewDecoder(b)

	for i := 0; i < max; i++ {
		ea, errA := da.Next()
		eb, errB := db.Next()
		if errA == io.EOF || errB == io.EOF {
			break
		} else if errA != nil {
			return r, errA
		} else if errB != nil {
			return r, errB
		}

		r.Compared++
		if eq(&ea, &eb) {
			r.Equal++
			continue
		}
		if r.FirstMismatch < 0 {
			r.FirstMismatch = i
			r.Mismatch = [2]trace.Event{ea, eb}
		}
		if onMismatch != nil {
			onMismatch(i, &ea, &eb)
		}
	}
	return r, nil
}

func main() {
	flag.Parse()
	log.SetFlags(0)

	eq, err := compareMode(mode)
	if err != nil {
		log.Fatal(err)
	}

	fa, err := os.Open(input)
	if err != nil {
		log.Fatal(err)
	}
	defer fa.Close()

	fb, err := os.Open(reference)
	if err != nil {
		log.Fatal(err)
	}
	defer fb.Close()

	var onMismatch func(int, *trace.Event, *trace.Event)
	if verbose {
		onMismatch = func(i int, a, b *trace.Event) {
			log.Printf("%d: %v 0x%02X != %v 0x%02X", i, a.Before.Address(), a.Opcode, b.Before.Address(), b.Opcode)
		}
	}

	r, err := compare(fa, fb, eq, maxEvents, onMismatch)
	if err != nil {
		log.Fatal(err)
	}
	log.Print(r)

	if r.FirstMismatch >= 0 {
		os.Exit(1)
	}
}

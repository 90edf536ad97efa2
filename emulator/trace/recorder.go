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

package trace

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/andreas-jonsson/emu8086/emulator/processor"
	"github.com/pkg/errors"
)

// Recorder encodes events on a background goroutine. Begin and End must
// be called from the goroutine driving the CPU.
type Recorder struct {
	current Event
	inScope bool
	steps   uint64

	output chan Event
	done   chan error
}

func NewRecorder(w io.Writer, queueSize, bufferSize int) *Recorder {
	r := &Recorder{
		output: make(chan Event, queueSize),
		done:   make(chan error, 1),
	}

	go func() {
		var buffer bytes.Buffer
		enc := json.NewEncoder(&buffer)

		var err error
		for ev := range r.output {
			if err != nil {
				continue
			}
			if err = enc.Encode(ev); err != nil {
				err = errors.Wrap(err, "encode")
				continue
			}
			if buffer.Len() >= bufferSize {
				_, err = io.Copy(w, &buffer)
			}
		}
		if err == nil {
			_, err = io.Copy(w, &buffer)
		}
		r.done <- err
	}()
	return r
}

// Begin captures the register state before an instruction executes.
func (r *Recorder) Begin(p processor.Processor, opcode byte) {
	r.inScope = true
	r.current = Event{
		Step:   r.steps,
		Opcode: opcode,
		Before: Capture(p.GetRegisters()),
	}
}

func (r *Recorder) End(p processor.Processor, cycles int, err error) {
	if !r.inScope {
		return
	}
	r.inScope = false
	r.steps++

	r.current.Cycles = cycles
	r.current.After = Capture(p.GetRegisters())
	if err != nil {
		r.current.Error = err.Error()
	}
	r.output <- r.current
}

func (r *Recorder) Discard() {
	r.inScope = false
}

// Close flushes all queued events and reports the first write error.
func (r *Recorder) Close() error {
	close(r.output)
	return <-r.done
}

// Decoder reads events written by a Recorder.
type Decoder struct {
	dec *json.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: json.NewDecoder(r)}
}

// Next returns io.EOF after the last event.
func (d *Decoder) Next() (Event, error) {
	var ev Event
	err := d.dec.Decode(&ev)
	return ev, err
}

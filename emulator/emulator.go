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

package emulator

import (
	"context"

	"github.com/andreas-jonsson/emu8086/emulator/memory"
	"github.com/andreas-jonsson/emu8086/emulator/processor"
	"github.com/andreas-jonsson/emu8086/emulator/processor/cpu"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultSentinel is the RET opcode. A flat program returning to its caller ends the session.
const DefaultSentinel byte = 0xC3

var ErrStepLimit = errors.New("step limit reached")

type Tracer interface {
	Begin(p processor.Processor, opcode byte)
	End(p processor.Processor, cycles int, err error)
}

// Session drives a CPU until the sentinel opcode is reached.
type Session struct {
	CPU *cpu.CPU

	Sentinel byte
	// MaxSteps limits the instructions executed by each Run call. Zero is unlimited.
	MaxSteps uint64
	Tracer   Tracer
	LogSteps bool

	log   logrus.FieldLogger
	steps uint64
}

func NewSession(p *cpu.CPU, log logrus.FieldLogger) *Session {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Session{CPU: p, Sentinel: DefaultSentinel, log: log}
}

func (s *Session) Steps() uint64 {
	return s.steps
}

// Halted reports whether the next opcode is the sentinel.
func (s *Session) Halted() bool {
	op, err := s.CPU.PeekOpcode()
	return err == nil && op == s.Sentinel
}

// Step executes a single instruction regardless of the sentinel.
func (s *Session) Step() (int, error) {
	p := s.CPU
	op, err := p.PeekOpcode()
	if err != nil {
		return 0, err
	}

	if s.LogSteps {
		s.log.WithFields(logrus.Fields{
			"cs":     p.CS(),
			"ip":     p.IP,
			"opcode": op,
		}).Debug("step")
	}

	if s.Tracer != nil {
		s.Tracer.Begin(p, op)
	}
	c, err := p.Step()
	if s.Tracer != nil {
		s.Tracer.End(p, c, err)
	}

	if err == nil {
		s.steps++
	}
	return c, err
}

// Run steps until the sentinel, an error, the step limit or cancellation.
// It returns the number of instructions executed by this call.
func (s *Session) Run(ctx context.Context) (uint64, error) {
	return s.RunUntil(ctx, nil)
}

// RunUntil is like Run but also stops, without error, before any
// instruction after the first for which stop returns true.
func (s *Session) RunUntil(ctx context.Context, stop func(*cpu.CPU) bool) (uint64, error) {
	start := s.steps
	for {
		n := s.steps - start
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if s.Halted() {
			s.log.WithFields(logrus.Fields{
				"steps":   s.steps,
				"cycles":  s.CPU.PendingCycles(),
				"address": memory.NewAddress(s.CPU.CS(), s.CPU.IP),
			}).Info("program halted")
			return n, nil
		}
		if n > 0 && stop != nil && stop(s.CPU) {
			return n, nil
		}
		if s.MaxSteps > 0 && n >= s.MaxSteps {
			return n, errors.Wrapf(ErrStepLimit, "%d steps", s.MaxSteps)
		}

		if _, err := s.Step(); err != nil {
			s.log.WithError(err).Error("step failed")
			return s.steps - start, err
		}
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/time/rate"

	"github.com/joamaki/pushstream/stream"
)

// printer is the observer of one subscriber. It writes one line per
// notification to 'w'.
type printer struct {
	name string
	out  *output
}

type output struct {
	w   io.Writer
	err error
}

func (o *output) printf(format string, args ...any) {
	if o.err != nil {
		return
	}
	_, o.err = fmt.Fprintf(o.w, format, args...)
}

func (p *printer) OnNext(item int)   { p.out.printf("%s next %d\n", p.name, item) }
func (p *printer) OnCompleted()      { p.out.printf("%s completed\n", p.name) }
func (p *printer) OnError(err error) { p.out.printf("%s error %s\n", p.name, err) }

// observable builds the chain of operators of 'sub' on top of 'src'.
func (sub Subscriber) observable(src stream.Observable[int, error]) stream.Observable[int, error] {
	if sub.Scale != 0 {
		scale := sub.Scale
		src = stream.Map(src, func(x int) int { return x * scale })
	}
	if sub.ErrorPrefix != "" {
		prefix := sub.ErrorPrefix
		src = stream.MapError(src, func(err error) error { return fmt.Errorf("%s: %w", prefix, err) })
	}
	if len(sub.Then) > 0 {
		src = stream.ContinueWith(src, stream.FromSlice[int, error](sub.Then))
	}
	return src
}

// Run replays the events of 'sc' into a subject and writes the notifications
// received by each subscriber to 'w'. When the scenario has a rate, events are
// paced by a token bucket and Run returns early if 'ctx' is cancelled.
func Run(ctx context.Context, sc *Scenario, w io.Writer) error {
	if err := sc.Validate(); err != nil {
		return err
	}

	var limiter *rate.Limiter
	if sc.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(sc.Rate), max(sc.Burst, 1))
	}

	out := &output{w: w}
	subject := stream.NewSubject[int, error]()

	byName := make(map[string]Subscriber, len(sc.Subscribers))
	subs := make(map[string]stream.Subscription, len(sc.Subscribers))
	subscribe := func(sub Subscriber) {
		subs[sub.Name] = sub.observable(subject.Observable()).Subscribe(&printer{sub.Name, out})
	}
	defer func() {
		for _, s := range subs {
			s.Unsubscribe()
		}
	}()

	for _, sub := range sc.Subscribers {
		byName[sub.Name] = sub
		if !sub.Lazy {
			subscribe(sub)
		}
	}

	for i, ev := range sc.Events {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return fmt.Errorf("event %d (%s): %w", i, ev, err)
			}
		} else if err := ctx.Err(); err != nil {
			return fmt.Errorf("event %d (%s): %w", i, ev, err)
		}

		switch {
		case ev.Next != nil:
			subject.OnNext(*ev.Next)
		case ev.Complete:
			subject.OnCompleted()
		case ev.Error != "":
			subject.OnError(errors.New(ev.Error))
		case ev.Subscribe != "":
			subscribe(byName[ev.Subscribe])
		case ev.Unsubscribe != "":
			if s, ok := subs[ev.Unsubscribe]; ok {
				s.Unsubscribe()
				delete(subs, ev.Unsubscribe)
			}
		}
		if out.err != nil {
			return fmt.Errorf("writing output: %w", out.err)
		}
	}
	return nil
}

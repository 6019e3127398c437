// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

// Command replay pushes the events of a scenario file into a subject and
// prints what each subscriber observes.
//
//	replay -file scenario.yaml [-rate 10]
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/joamaki/pushstream/internal/scenario"
)

func main() {
	var (
		file = flag.String("file", "", "scenario file to replay")
		rate = flag.Float64("rate", -1, "events per second, overrides the scenario (0 = unpaced)")
	)
	flag.Parse()

	log.SetFlags(log.Lmicroseconds)
	log.SetPrefix("replay: ")

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	sc, err := scenario.Load(*file)
	if err != nil {
		log.Fatal(err)
	}
	if *rate >= 0 {
		sc.Rate = *rate
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log.Printf("replaying %d events to %d subscribers", len(sc.Events), len(sc.Subscribers))
	if err := scenario.Run(ctx, sc, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

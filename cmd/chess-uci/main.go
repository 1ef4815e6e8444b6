package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/katsup07/chess/internal/engine"
	"github.com/katsup07/chess/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	difficulty = flag.String("difficulty", "medium", "initial strength: easy, medium, or hard")
)

func main() {
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	eng := engine.New()
	d, err := engine.ParseDifficulty(*difficulty)
	if err != nil {
		log.Fatalf("invalid -difficulty: %v", err)
	}
	eng.SetDifficulty(d)

	if err := uci.New(eng, os.Stdout).Run(os.Stdin); err != nil {
		log.Fatal(err)
	}
}

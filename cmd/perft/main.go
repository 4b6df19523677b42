package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/dylhunn/dragontoothmg"

	"chess-movegen/chessmg"
)

func main() {
	fen := flag.String("fen", chessmg.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	verify := flag.Bool("verify", false, "Cross-check node counts against dragontoothmg")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := chessmg.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	// Optional divide output
	if *divide {
		div := chessmg.PerftDivide(board, *depth)
		var ref map[string]uint64
		if *verify {
			ref = referenceDivide(*fen, *depth)
		}
		moves := make([]string, 0, len(div))
		var sum uint64
		for m, n := range div {
			moves = append(moves, m)
			sum += n
		}
		sort.Strings(moves)
		mismatch := false
		for _, m := range moves {
			if ref != nil && ref[m] != div[m] {
				fmt.Printf("%s: %d (reference %d)\n", m, div[m], ref[m])
				mismatch = true
				continue
			}
			fmt.Printf("%s: %d\n", m, div[m])
		}
		for m, n := range ref {
			if _, ok := div[m]; !ok {
				fmt.Printf("%s: missing (reference %d)\n", m, n)
				mismatch = true
			}
		}
		fmt.Printf("Total: %d\n", sum)
		if mismatch {
			os.Exit(1)
		}
		return
	}

	// Optional CPU profiling
	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	// Timing loop
	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += chessmg.Perft(board, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	// Optional heap profile after run
	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}

	if *verify {
		ref := referencePerft(*fen, *depth) * uint64(*repeat)
		if ref != totalNodes {
			fmt.Fprintf(os.Stderr, "mismatch: got %d, dragontoothmg counts %d\n", totalNodes, ref)
			os.Exit(1)
		}
		fmt.Println("verified against dragontoothmg")
	}
}

func referencePerft(fen string, depth int) uint64 {
	b := dragontoothmg.ParseFen(fen)
	return dragontoothPerft(&b, depth)
}

func referenceDivide(fen string, depth int) map[string]uint64 {
	b := dragontoothmg.ParseFen(fen)
	out := make(map[string]uint64)
	moves := b.GenerateLegalMoves()
	for i := range moves {
		unapply := b.Apply(moves[i])
		out[moves[i].String()] = dragontoothPerft(&b, depth-1)
		unapply()
	}
	return out
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		unapply()
	}
	return nodes
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wyfcoding/ecomsynth/internal/export/hbase"
)

func main() {
	var (
		inputDir string
		outPath  string
		limit    int
	)
	flag.StringVar(&inputDir, "input", "", "folder containing sessions_*.json")
	flag.StringVar(&outPath, "out", "", "output .txt file with hbase shell commands")
	flag.IntVar(&limit, "limit", 5000, "how many sessions to ingest")
	flag.Parse()

	if inputDir == "" || outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: hbaseputs -input <dir> -out <file> [-limit n]")
		os.Exit(2)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output failed: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	emitter := &hbase.Emitter{Limit: limit}
	written, err := emitter.EmitDir(out, inputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "emit failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated HBase puts for %d sessions -> %s\n", written, outPath)
}

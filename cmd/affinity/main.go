package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	affinity "github.com/wyfcoding/ecomsynth/internal/affinity/domain"
	transaction "github.com/wyfcoding/ecomsynth/internal/transaction/domain"
	"github.com/wyfcoding/ecomsynth/pkg/utils"
)

func main() {
	var (
		inputPath string
		outPath   string
		top       int
	)
	flag.StringVar(&inputPath, "input", "data_raw/transactions.json", "transactions JSON file")
	flag.StringVar(&outPath, "out", "product_affinity.json", "output JSON file")
	flag.IntVar(&top, "top", 10, "how many top pairs to print")
	flag.Parse()

	data, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read transactions failed: %v\n", err)
		os.Exit(1)
	}

	var transactions []*transaction.Transaction
	if err := utils.FromJSON(string(data), &transactions); err != nil {
		fmt.Fprintf(os.Stderr, "parse transactions failed: %v\n", err)
		os.Exit(1)
	}

	pairs := affinity.CoOccurrences(transactions)

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output failed: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := json.NewEncoder(out).Encode(pairs); err != nil {
		fmt.Fprintf(os.Stderr, "write output failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Computed %d product pairs from %d transactions -> %s\n", len(pairs), len(transactions), outPath)
	if top > len(pairs) {
		top = len(pairs)
	}
	for _, pc := range pairs[:top] {
		fmt.Printf("%s + %s: %d\n", pc.Pair[0], pc.Pair[1], pc.Frequency)
	}
}

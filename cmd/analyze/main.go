// Command analyze is a one-shot filter: candle JSON on stdin, one
// signal record on stdout. Exit status is non-zero only for load
// failures; an insufficient-data SKIP is a successful run.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"SignalSentry/internal/collector"
	"SignalSentry/internal/model"
	"SignalSentry/internal/series"
	"SignalSentry/internal/strategy"
)

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fail(fmt.Errorf("read stdin: %w", err))
	}

	var s *model.Series
	if len(input) == 0 {
		// no input: generate a demo series ending in a panic-sell bar
		log.Println("[INFO] no input on stdin, using generated demo data")
		s = collector.GenerateMockSeries(100, true)
	} else {
		s, err = series.Load(input)
		if err != nil {
			fail(err)
		}
	}

	res := strategy.Analyze(s, strategy.DefaultConfig())

	out, err := json.Marshal(res)
	if err != nil {
		fail(fmt.Errorf("encode result: %w", err))
	}
	fmt.Println(string(out))
}

// fail prints the error record to stdout, mirroring the signal output
// channel, and exits non-zero.
func fail(err error) {
	out, _ := json.Marshal(map[string]string{"error": err.Error()})
	fmt.Println(string(out))
	os.Exit(1)
}

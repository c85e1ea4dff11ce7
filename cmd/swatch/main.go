// Package main provides a command line tool for deriving entity colors.
//
// It runs the same derivation the server exposes, so scripts can color
// entities without a network round trip.
//
// Usage:
//
//	swatch -seed 42 0194e2c3-88d1-7f3e-9c41-55aa12345678
//	cat ids.txt | swatch -json
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/listenupapp/swatch-server/pkg/swatch"
)

var (
	seed   = flag.Int64("seed", 0, "Seed mixed into the derivation")
	asJSON = flag.Bool("json", false, "Emit one JSON object per line")
	quiet  = flag.Bool("quiet", false, "Print only the hex color")
)

// jsonLine is the shape emitted per UUID in -json mode.
type jsonLine struct {
	ID     string `json:"id"`
	Hex    string `json:"hex"`
	IsDark bool   `json:"is_dark"`
	Seed   int64  `json:"seed"`
}

func main() {
	flag.Parse()

	ids := flag.Args()
	if len(ids) == 0 {
		ids = readStdin()
	}

	// Keep going past bad UUIDs so a pipeline processes everything,
	// then report the failure through the exit code.
	exitCode := 0
	for _, raw := range ids {
		if err := printSwatch(raw); err != nil {
			fmt.Fprintf(os.Stderr, "swatch: %v\n", err)
			exitCode = 1
		}
	}

	os.Exit(exitCode)
}

// readStdin collects UUIDs from stdin, one per line.
func readStdin() []string {
	var ids []string

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if text := strings.TrimSpace(scanner.Text()); text != "" {
			ids = append(ids, text)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "swatch: read stdin: %v\n", err)
		os.Exit(1)
	}

	return ids
}

func printSwatch(raw string) error {
	id, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid UUID %q", raw)
	}

	sw := swatch.FromUUID(id, *seed)

	switch {
	case *quiet:
		fmt.Println(sw.Hex())
	case *asJSON:
		out, err := json.Marshal(jsonLine{
			ID:     id.String(),
			Hex:    sw.Hex(),
			IsDark: sw.IsDark,
			Seed:   *seed,
		})
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		contrast := "light"
		if sw.IsDark {
			contrast = "dark"
		}
		fmt.Printf("%s\t%s\t%s\n", sw.Hex(), contrast, id)
	}

	return nil
}

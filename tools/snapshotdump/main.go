package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 3 {
		printHelp()
		return
	}

	path := os.Args[2]
	switch os.Args[1] {
	case "header":
		f, err := os.Open(path)
		if err != nil {
			fail(err)
		}
		defer f.Close()
		h, err := storage.ReadHeader(f)
		if err != nil {
			fail(err)
		}
		fmt.Printf("magic    %s\n", h.Magic[:])
		fmt.Printf("version  %d\n", h.Version)
		fmt.Printf("tick     %d\n", h.Tick)
		fmt.Printf("written  %s\n", time.UnixMilli(h.Timestamp).UTC().Format(time.RFC3339))
		fmt.Printf("objects  %d\n", h.ObjectCount)
		fmt.Printf("body     %d bytes (zstd)\n", h.BodyLen)
	case "summary":
		snap := load(path)
		counts := map[string][2]int{}
		for _, o := range snap.Objects {
			c := counts[o.DefinitionID]
			if o.Status == domain.StatusDepleted {
				c[1]++
			} else {
				c[0]++
			}
			counts[o.DefinitionID] = c
		}
		ids := make([]string, 0, len(counts))
		for id := range counts {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		fmt.Printf("tick %d, %d objects\n", snap.Tick, len(snap.Objects))
		for _, id := range ids {
			fmt.Printf("  %-14s active %3d  depleted %3d\n", id, counts[id][0], counts[id][1])
		}
	case "json":
		snap := load(path)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			fail(err)
		}
	default:
		printHelp()
	}
}

func load(path string) storage.Snapshot {
	snap, err := storage.LoadSnapshot(path)
	if err != nil {
		fail(err)
	}
	return snap
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "snapshotdump: %v\n", err)
	os.Exit(1)
}

func printHelp() {
	fmt.Println(`Snapshot dump - inspect WebScape world snapshots
Commands:
  header <file>    - print the fixed header
  summary <file>   - count objects per definition and status
  json <file>      - decompress and print the body as JSON`)
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"symdiff/core/config"
	"symdiff/core/database"
	"symdiff/core/source"
	"symdiff/core/storage"
	"symdiff/core/symdiff"
)

// Prints the key and signature of every record in a source, and which keys repeat.
//
//	go run ./cmd/debug_keys id,name s3://exports/items.json
func main() {
	if len(os.Args) != 3 {
		log.Fatalf("usage: %s KEYS SOURCE", os.Args[0])
	}
	keys := strings.Split(os.Args[1], ",")
	raw := os.Args[2]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	opts := source.Options{Bucket: cfg.Storage.Bucket}
	if loc, err := source.ParseLocation(raw); err == nil {
		switch loc.Scheme {
		case source.SchemeS3:
			if opts.Client, err = storage.NewClient(cfg.Storage); err != nil {
				log.Fatal(err)
			}
		case source.SchemeDB:
			if opts.DB, err = database.Connect(cfg.Database); err != nil {
				log.Fatal(err)
			}
		}
	}

	src := source.NewLoader(opts)
	defer src.Close()

	records, err := src.Load(context.Background(), raw, keys)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Loaded %d records from %s\n\n", len(records), raw)

	first := make(map[string]int)
	for i, r := range records {
		k, err := symdiff.Signature(keys, r)
		if err != nil {
			fmt.Printf("%6d  error: %v\n", i, err)
			continue
		}
		if j, ok := first[k.Signature()]; ok {
			fmt.Printf("%6d  %-30s %q  duplicate of %d\n", i, k, k.Signature(), j)
			continue
		}
		first[k.Signature()] = i
		fmt.Printf("%6d  %-30s %q\n", i, k, k.Signature())
	}

	fmt.Printf("\n%d distinct keys\n", len(first))
}

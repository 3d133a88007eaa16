//go:build ignore

// Command generate_sample_menu checks the bundled menu and writes a gzipped
// copy for upload to the S3 menu bucket.
//
//	go run scripts/generate_sample_menu.go [-in data/menu.json] [-out data/menu.json.gz]
package main

import (
	"bytes"
	"compress/gzip"
	"flag"
	"fmt"
	"log"
	"os"

	"tableside/internal/catalog"
)

func main() {
	in := flag.String("in", "data/menu.json", "menu document to compress")
	out := flag.String("out", "data/menu.json.gz", "gzipped output file")
	flag.Parse()

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("Failed to read menu: %v", err)
	}

	doc, err := catalog.Parse(bytes.NewReader(data))
	if err != nil {
		log.Fatalf("Menu is not valid JSON: %v", err)
	}
	menu, err := catalog.New(doc)
	if err != nil {
		log.Fatalf("Menu is not loadable: %v", err)
	}

	if err := writeGzip(*out, data); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	fmt.Printf("Created %s from %s\n", *out, *in)
	fmt.Printf("  restaurant: %s\n", doc.Restaurant.Name)
	fmt.Printf("  categories: %d\n", len(doc.Restaurant.Categories))
	fmt.Printf("  available items: %d\n", len(menu.Available()))
}

func writeGzip(path string, data []byte) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	if _, err := gzipWriter.Write(data); err != nil {
		return fmt.Errorf("failed to write menu: %w", err)
	}
	return gzipWriter.Close()
}

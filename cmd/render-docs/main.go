package main

import (
	"flag"
	"log"
	"os"

	"github.com/forgedash/trading-ai-proxy/internal/docsite"
)

func main() {
	in := flag.String("in", "docs/tutorial.md", "markdown source file")
	out := flag.String("out", "docs/tutorial.html", "HTML output file")
	title := flag.String("title", "Trading Dashboard Tutorial", "page title")
	flag.Parse()

	source, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("read %s: %v", *in, err)
	}

	page, err := docsite.Convert(source, *title)
	if err != nil {
		log.Fatalf("convert: %v", err)
	}

	if err := os.WriteFile(*out, page, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	log.Printf("wrote %s (%d bytes)", *out, len(page))
}

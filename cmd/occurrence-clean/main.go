// Command occurrence-clean filters raw crabeater seal occurrence downloads
// into modeling-ready CSVs, one independent pipeline per data source.
//
// Usage:
//
//	occurrence-clean gbif --input raw/gbif_download.tsv
//	occurrence-clean scar --input raw/scar_extract.csv --output Cleaned_Data
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local runs; absence is fine.
	_ = godotenv.Load()

	if err := Execute(); err != nil {
		os.Exit(1)
	}
}

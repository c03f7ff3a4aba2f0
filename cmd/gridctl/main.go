// Command gridctl inspects a league export and generates grids offline.
//
// Usage:
//
//	gridctl summary --file league.json.gz
//	gridctl intersect --file league.json --a team:3 --b ach:MVP --season 2031
//	gridctl grid --file league.json --seed 42
//	gridctl player --file league.json --pid 17
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

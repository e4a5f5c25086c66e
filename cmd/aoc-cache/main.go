package main

import (
	cmd "github.com/rohmanhakim/aoc-cache/internal/cli"
)

func main() {
	cmd.Execute()
}

package main

import "github.com/pfrederiksen/fbref-matches/internal/cli"

func main() {
	cli.Execute()
}

package main

import rnbokit "github.com/ssp-tools/rnbokit/cmd/rnbokit"

func main() {
	rnbokit.Execute()
}

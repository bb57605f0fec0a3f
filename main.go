package main

import "fuzzydex/cmd"

func main() {
	cmd.Execute()
}

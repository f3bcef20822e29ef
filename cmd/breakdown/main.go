package main

import "breakdown/cmd/breakdown/cmd"

func main() {
	cmd.Execute()
}

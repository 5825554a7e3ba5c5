package main

import "beatwave/cmd"

func main() {
	cmd.Execute()
}

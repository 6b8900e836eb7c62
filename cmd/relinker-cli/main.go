package main

import "relinker/cmd/relinker-cli/cmd"

func main() {
	cmd.Execute()
}

package main

import "ai-cli/cmd"

func main() {
	cmd.Execute()
}

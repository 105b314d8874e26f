package main

import "github.com/umlforge/umlforge/cli/commands"

func main() {
	commands.Execute()
}

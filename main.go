package main

import "github.com/m365tools/graph-assistant/cmd"

func main() {
	cmd.Execute()
}

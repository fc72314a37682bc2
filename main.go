package main

import "github.com/jvaldes/pairbot/cmd"

func main() {
	cmd.Execute()
}

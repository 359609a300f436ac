package main

import "github.com/raceiq/raceiq-engine/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/OpenTraceLab/Cathedral/cmd/cathedral/cmd"

func main() {
	cmd.Execute()
}

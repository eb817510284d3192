package main

import "github.com/tetrislab/tetris-cli/internal/cmd"

func main() {
	cmd.Execute()
}

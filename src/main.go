package main

import (
	"github.com/fenhl/mse-to-json/src/cmd"
)

func main() {
	cmd.Execute()
}

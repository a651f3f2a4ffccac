package main

import "github.com/alexiusacademia/gotower/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/apimesh/apimesh/cmd"

func main() {
	cmd.Execute()
}

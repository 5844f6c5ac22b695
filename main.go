package main

import "github.com/gaurav-prasanna/pagerag/cmd"

func main() {
	cmd.Execute()
}

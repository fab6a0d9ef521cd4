package main

import "pmaconv/cmd"

func main() {
	cmd.Execute()
}

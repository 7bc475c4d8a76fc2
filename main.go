package main

import "symdiff/cmd"

func main() {
	cmd.Execute()
}

package main

import "catering/cmd"

func main() {
	cmd.Execute()
}

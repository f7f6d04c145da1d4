package main

import "thought-echo/cli"

func main() {
	cli.Execute()
}

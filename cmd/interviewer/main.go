package main

import "github.com/mockinterview/interviewer/internal/cli"

func main() {
	cli.Execute()
}

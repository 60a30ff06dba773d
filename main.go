package main

import "github.com/reporthub/reporthub-api/cmd"

func main() {
	cmd.Execute()
}

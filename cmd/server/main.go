package main

import "github.com/lernwort/backend/cmd"

func main() {
	cmd.Execute()
}

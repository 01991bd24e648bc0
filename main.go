package main

import "github.com/tanq16/woofget/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/theirongolddev/staffplan/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/tristendillon/pyns/cmd"

func main() {
	cmd.Execute()
}

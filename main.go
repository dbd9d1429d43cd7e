package main

import "github.com/masnyjimmy/srihc/cmd"

func main() {
	cmd.Execute()
}

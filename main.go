package main

import "github.com/mgrier/ennest/cmd"

func main() {
	cmd.Execute()
}

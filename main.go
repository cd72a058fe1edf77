package main

import "github.com/keisetsu/wed/cmd"

func main() {
	cmd.Execute()
}

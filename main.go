package main

import "github.com/texthtml/pgql/cmd"

func main() {
	cmd.Execute()
}

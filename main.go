package main

import "github.com/kab1012/budget-tracker/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/chrisdamba/foodstory/cmd"

func main() {
	cmd.Execute()
}

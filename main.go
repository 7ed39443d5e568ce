package main

import "github.com/gaurav-prasanna/tutorpage/cmd"

func main() {
	cmd.Execute()
}

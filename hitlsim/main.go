package main

import "github.com/sarchlab/hitlsim/hitlsim/cmd"

func main() {
	cmd.Execute()
}

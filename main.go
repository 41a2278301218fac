package main

import "github.com/saadjs/platecalc/cmd/platecalc"

func main() {
	platecalc.Execute()
}

package main

import "github.com/frahmantamala/payroll-report/cmd"

func main() {
	cmd.Execute()
}

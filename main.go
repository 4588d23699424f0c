package main

import "github.com/frahmantamala/employee-records/cmd"

func main() {
	cmd.Execute()
}

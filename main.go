package main

import "github.com/tusharsircar95/GSQuantify-2016-JobScheduler/cmd"

func main() {
	cmd.Execute()
}

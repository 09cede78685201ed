package main

import "shipment-gateway/cmd"

func main() {
	cmd.Execute()
}

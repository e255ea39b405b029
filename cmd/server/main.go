// @title Events Platform API
// @version 1.0
// @description Events, venues and enrollment with capacity enforcement.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import "eventsplatform/cmd/server/cmd"

func main() {
	cmd.Execute()
}

package main

import (
	"exusiai.dev/folio-stats/cmd/app"
)

func main() {
	app.Run()
}

package main

import "assiduous_backend/internal/app"

func main() {
	app.Run()
}

package main

import "piwork_backend/internal/app"

func main() {
	app.Run()
}

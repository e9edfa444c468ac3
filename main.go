package main

import "github.com/Jenn623/NutriBuddy/cmd/nutribuddy"

func main() {
	nutribuddy.Execute()
}

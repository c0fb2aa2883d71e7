package main

import "github.com/killallgit/podcast-gateway/cmd"

// @title           Podcast API Gateway
// @version         1.0.0
// @description     REST and GraphQL gateway over an upstream podcast catalog
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/podcast-gateway
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:3000
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}

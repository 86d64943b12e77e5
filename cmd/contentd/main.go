// Command contentd serves the inkroom CMS API.
//
//	@title						Inkroom CMS API
//	@version					1.0
//	@description				Role-based content management: articles, moderation and user administration.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the session token.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "contentd: %v\n", err)
		stop()
		os.Exit(1)
	}
}

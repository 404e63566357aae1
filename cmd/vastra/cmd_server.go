package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/vastra/app/controllers"
	"github.com/shashiranjanraj/vastra/app/routes"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/internal/identity"
	"github.com/shashiranjanraj/vastra/internal/server"
	"github.com/shashiranjanraj/vastra/pkg/docstore"
	"github.com/shashiranjanraj/vastra/pkg/router"
)

var memoryFlag bool

// vastra serve — start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start(server.Options{Memory: memoryFlag})
	},
}

// vastra route:list — print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New()
		registerForListing(r)

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

// registerForListing wires the route table against in-memory stores so the
// listing never needs a database connection.
func registerForListing(r *router.Router) {
	store := docstore.NewMemory()
	verifier := identity.NewJWTVerifier(nil)
	roles := identity.NewClaimStore(nil, store.Collection("users"))

	routes.RegisterAPI(r, routes.Controllers{
		Auth:    controllers.NewAuthController(services.NewAuthService(store, verifier, roles)),
		Product: controllers.NewProductController(services.NewCatalogService(store, roles)),
		Cart:    controllers.NewCartController(services.NewCartService(store)),
		Order:   controllers.NewOrderController(services.NewOrderService(store)),
	}, verifier)
}

func init() {
	serveCmd.Flags().BoolVar(&memoryFlag, "memory", false, "run against in-process stores (no MongoDB/Redis)")
}

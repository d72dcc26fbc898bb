// Package crmclient provides the primary entry point for constructing a
// CRM API client that implements the crm.Client interface.
//
// It layers configuration, HTTP transport, and credential handling on top
// of the resource interfaces and types defined in the crm package. Most
// applications should import crmclient to build a client, then use the
// returned crm.Client to access resource-specific clients, for example
// Customers(), Leads(), Opportunities(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/crmplatform-io/crm/pkg/crm"
//	  "github.com/crmplatform-io/crm/pkg/crmclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // With an API key scoped to a tenant:
//	  cli, err := crmclient.NewWithAPIKey("https://api.example.com", "my-api-key", "tenant-id")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with an access token you already have:
//	  cli, err = crmclient.NewWithToken("https://api.example.com", "eyJhbGciOi...")
//
//	  // Or start unauthenticated and log in. Login stores the issued
//	  // access and refresh tokens on the client, and the client refreshes
//	  // them automatically before they expire.
//	  cli, err = crmclient.NewUnauthenticated("https://api.example.com")
//	  if err != nil { log.Fatal(err) }
//
//	  _, err = cli.Auth().Login(ctx, "user@example.com", "password")
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the crm.Client interface
//	  customers, err := cli.Customers().List(ctx, &crm.ListOptions{PerPage: 10})
//	  if err != nil { log.Fatal(err) }
//	  _ = customers
//	}
//
// # Helpers
//
// The package also provides the full crm.Config form through New for
// callers that need retries, caching, interceptors, or a custom logger.
package crmclient

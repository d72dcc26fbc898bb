// Package crm provides types, interfaces, and helpers for working with the
// CRM platform REST API.
//
// # Overview
//
// The crm package defines the domain types (e.g., Customer, Contact, Lead,
// Opportunity, Deal) and the interfaces for resource-oriented clients (e.g.,
// CustomersClient, LeadsClient). A concrete implementation of these clients
// is provided by the crmclient package, which wires configuration, transport,
// and authentication. Most consumers should import crmclient to construct a
// client and then interact with the resource client interfaces exposed here.
//
// Getting a client
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
//	  cli, err := crmclient.NewWithAPIKey("https://api.example.com", "key", "tenant-1")
//	  if err != nil { log.Fatal(err) }
//
//	  // List the first page of customers
//	  customers, err := cli.Customers().List(ctx, crm.NewListOptions())
//	  if err != nil { log.Fatal(err) }
//	  _ = customers
//	}
//
// # Queries and pagination
//
// Use ListOptions to express common list options (page, per_page, status,
// search, filters). The package also provides helpers for iterating or
// collecting paginated results:
//
//	it := crm.NewPageIterator(ctx, cli.Customers().List, crm.NewListOptions())
//	for it.HasNext() {
//	  customer, err := it.Next()
//	  if err != nil { break }
//	  _ = customer
//	}
//
// or fetch all results at once:
//
//	all, err := crm.FetchAllPages(ctx, cli.Leads().List, nil, nil)
//	if err != nil { /* handle error */ }
//	_ = all
//
// # Errors
//
// API failures are represented by Error, which carries the error kind, the
// HTTP status, the server's machine-readable code, and any structured
// details. Helpers such as IsNotFound, IsAuthentication, and IsRateLimit
// make it easy to branch on common cases.
//
// # Interceptors and caching
//
// The package includes generic building blocks such as request/response
// interceptors (for logging, tenant headers, metrics, rate limiting, circuit
// breaking) and a pluggable Cache abstraction with in-memory and NATS KV
// backends. The crmclient package composes these pieces for a sensible
// default client; applications with advanced needs can use these primitives
// directly.
package crm

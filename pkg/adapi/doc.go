// Package adapi defines the public types and interfaces for the MediaForge
// advertising platform API client.
//
// It contains the entity types (advertisers, campaigns, creatives, line
// items, insertion orders, publishers, segments), the response envelope and
// error taxonomy used by every call, and the generic EntityOperations
// interface that each bound entity client implements.
//
// Most applications should not construct clients from this package directly;
// import adclient to build one:
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/mediaforge-io/adapi-client/pkg/adapi"
//	  "github.com/mediaforge-io/adapi-client/pkg/adclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := adclient.New(ctx, &adapi.Config{
//	    APIEndpoint: "https://api.example.com",
//	    Email:       "ops@example.com",
//	    Password:    "secret",
//	  })
//	  if err != nil {
//	    log.Fatal(err)
//	  }
//
//	  advertisers, err := cli.Advertisers().QueryAll(ctx, nil)
//	  if err != nil {
//	    log.Fatal(err)
//	  }
//	  _ = advertisers
//	}
//
// # Error channels
//
// Routine, expected negative outcomes (an empty write body, an edit or
// delete against an id the server cannot load) come back as
// OperationResult values with Success set to false. Everything else --
// transport failures, unrecognized server errors, repeated authentication
// failures -- is returned on the error channel. FailOnNotFound moves the
// not-found case from the result channel to the error channel for callers
// that want to treat it as exceptional.
package adapi
